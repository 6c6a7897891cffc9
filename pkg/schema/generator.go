package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// JSONSchema is the subset of JSON Schema 2020-12 the generator emits. Type
// is a string, or a two-element list when the value may be null.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 any                    `json:"type,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	Enum                 []any                  `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	MinItems             *int                   `json:"minItems,omitempty"`
}

const schemaRef = "https://json-schema.org/draft/2020-12/schema"

const DefaultBaseID = "https://schemas.rag-eval.dev"

// Generator builds JSON schemas from Go types. Field names come from the
// configured struct tag (json by default); the schema tag carries
// constraints: required, enum=a|b, default=x, pattern=re, min=n, max=n,
// minItems=n.
type Generator struct {
	tagName string
	baseID  string
}

type Option func(*Generator)

// WithTagName reads field names from tag, e.g. "yaml" for config files.
func WithTagName(tag string) Option {
	return func(g *Generator) {
		g.tagName = tag
	}
}

func WithBaseID(id string) Option {
	return func(g *Generator) {
		g.baseID = strings.TrimSuffix(id, "/")
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{tagName: "json", baseID: DefaultBaseID}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateSchema builds the root schema for t, titled name.
func (g *Generator) GenerateSchema(t reflect.Type, name string) (*JSONSchema, error) {
	root, err := g.schemaFor(t)
	if err != nil {
		return nil, err
	}
	root.Schema = schemaRef
	root.Title = name
	root.ID = fmt.Sprintf("%s/%s", g.baseID, strings.ToLower(name))
	return root, nil
}

// GenerateJSONSchema renders the schema of v's type as indented JSON.
func (g *Generator) GenerateJSONSchema(v any, name string) ([]byte, error) {
	s, err := g.GenerateSchema(reflect.TypeOf(v), name)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return data, nil
}

func (g *Generator) schemaFor(t reflect.Type) (*JSONSchema, error) {
	if t.Kind() == reflect.Pointer {
		inner, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		if typ, ok := inner.Type.(string); ok && typ != "object" {
			inner.Type = []string{typ, "null"}
		}
		return inner, nil
	}

	switch t.Kind() {
	case reflect.Struct:
		return g.structSchema(t)
	case reflect.Slice, reflect.Array:
		items, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for array items: %w", err)
		}
		return &JSONSchema{Type: "array", Items: items}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type: %s", t.Key())
		}
		values, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &JSONSchema{Type: "object", AdditionalProperties: values}, nil
	case reflect.String:
		return &JSONSchema{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &JSONSchema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &JSONSchema{Type: "number"}, nil
	case reflect.Bool:
		return &JSONSchema{Type: "boolean"}, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *Generator) structSchema(t reflect.Type) (*JSONSchema, error) {
	s := &JSONSchema{
		Type:       "object",
		Properties: make(map[string]*JSONSchema),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, inline := g.fieldName(field)
		if name == "-" {
			continue
		}

		fieldSchema, err := g.schemaFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for field %s: %w", field.Name, err)
		}

		if inline && fieldSchema.Properties != nil {
			for k, v := range fieldSchema.Properties {
				s.Properties[k] = v
			}
			s.Required = append(s.Required, fieldSchema.Required...)
			continue
		}

		if desc := field.Tag.Get("description"); desc != "" {
			fieldSchema.Description = desc
		}
		if tag := field.Tag.Get("schema"); tag != "" {
			if parseSchemaTag(tag, fieldSchema) {
				s.Required = append(s.Required, name)
			}
		}
		s.Properties[name] = fieldSchema
	}

	return s, nil
}

func (g *Generator) fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get(g.tagName)
	parts := strings.Split(tag, ",")
	inline := false
	for _, p := range parts[1:] {
		if p == "inline" {
			inline = true
		}
	}

	if parts[0] != "" {
		return parts[0], inline
	}
	if g.tagName == "yaml" {
		return strings.ToLower(field.Name), inline
	}
	return field.Name, inline
}

// parseSchemaTag applies constraints to s and reports whether the field is
// required.
func parseSchemaTag(tag string, s *JSONSchema) bool {
	required := false

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		key, value, _ := strings.Cut(part, "=")

		switch key {
		case "required":
			required = true
		case "enum":
			for _, e := range strings.Split(value, "|") {
				s.Enum = append(s.Enum, e)
			}
		case "default":
			s.Default = typedValue(s.Type, value)
		case "pattern":
			s.Pattern = value
		case "min":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				s.Minimum = &v
			}
		case "max":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				s.Maximum = &v
			}
		case "minItems":
			if v, err := strconv.Atoi(value); err == nil {
				s.MinItems = &v
			}
		}
	}

	return required
}

func typedValue(typ any, value string) any {
	name, _ := typ.(string)
	if list, ok := typ.([]string); ok && len(list) > 0 {
		name = list[0]
	}

	switch name {
	case "integer":
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}
