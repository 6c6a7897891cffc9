package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Connection string `json:"connection" yaml:"connection" schema:"required"`
}

type sample struct {
	Name     string            `json:"name" yaml:"name" schema:"required,pattern=^[a-z]+$" description:"Lowercase name"`
	Mode     string            `json:"mode" yaml:"mode" schema:"enum=abort|record,default=abort"`
	TopK     int               `json:"top_k" yaml:"top_k" schema:"min=1,default=5"`
	Score    *float64          `json:"score" yaml:"score" schema:"min=0,max=1"`
	Tags     []string          `json:"tags" yaml:"tags" schema:"minItems=1"`
	Labels   map[string]string `json:"labels" yaml:"labels"`
	DB       *inner            `json:"db,omitempty" yaml:"db,omitempty"`
	Skipped  string            `json:"-" yaml:"-"`
	Untagged bool
	hidden   string
}

func TestGenerateSchema(t *testing.T) {
	s, err := NewGenerator().GenerateSchema(reflect.TypeOf(sample{}), "Sample")
	require.NoError(t, err)

	assert.Equal(t, schemaRef, s.Schema)
	assert.Equal(t, "Sample", s.Title)
	assert.Equal(t, DefaultBaseID+"/sample", s.ID)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"name"}, s.Required)

	assert.Len(t, s.Properties, 8)
	assert.NotContains(t, s.Properties, "-")
	assert.NotContains(t, s.Properties, "hidden")
	assert.Contains(t, s.Properties, "Untagged")

	name := s.Properties["name"]
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "^[a-z]+$", name.Pattern)
	assert.Equal(t, "Lowercase name", name.Description)

	assert.Equal(t, []any{"abort", "record"}, s.Properties["mode"].Enum)
	assert.Equal(t, "abort", s.Properties["mode"].Default)

	topK := s.Properties["top_k"]
	assert.Equal(t, "integer", topK.Type)
	assert.Equal(t, 5, topK.Default)
	require.NotNil(t, topK.Minimum)
	assert.Equal(t, 1.0, *topK.Minimum)

	score := s.Properties["score"]
	assert.Equal(t, []string{"number", "null"}, score.Type)
	assert.Equal(t, 1.0, *score.Maximum)

	tags := s.Properties["tags"]
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)
	assert.Equal(t, 1, *tags.MinItems)

	labels := s.Properties["labels"]
	assert.Equal(t, "object", labels.Type)
	assert.Equal(t, "string", labels.AdditionalProperties.Type)

	db := s.Properties["db"]
	assert.Equal(t, "object", db.Type)
	assert.Equal(t, []string{"connection"}, db.Required)
}

func TestGenerateSchema_YAMLTags(t *testing.T) {
	s, err := NewGenerator(WithTagName("yaml"), WithBaseID("https://example.com/")).
		GenerateSchema(reflect.TypeOf(&sample{}), "Sample")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/sample", s.ID)
	assert.Contains(t, s.Properties, "top_k")
	assert.Contains(t, s.Properties, "untagged")
}

func TestGenerateSchema_SliceRoot(t *testing.T) {
	s, err := NewGenerator().GenerateSchema(reflect.TypeOf([]inner{}), "Inners")
	require.NoError(t, err)

	assert.Equal(t, schemaRef, s.Schema)
	assert.Equal(t, "array", s.Type)
	assert.Equal(t, []string{"connection"}, s.Items.Required)
}

func TestGenerateSchema_Unsupported(t *testing.T) {
	type bad struct {
		Ch chan int `json:"ch"`
	}
	_, err := NewGenerator().GenerateSchema(reflect.TypeOf(bad{}), "Bad")
	assert.ErrorContains(t, err, "field Ch")

	type badKey struct {
		M map[int]string `json:"m"`
	}
	_, err = NewGenerator().GenerateSchema(reflect.TypeOf(badKey{}), "BadKey")
	assert.ErrorContains(t, err, "map key")
}

func TestGenerateJSONSchema(t *testing.T) {
	data, err := NewGenerator().GenerateJSONSchema(sample{}, "Sample")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, schemaRef, decoded["$schema"])

	props := decoded["properties"].(map[string]any)
	score := props["score"].(map[string]any)
	assert.Equal(t, []any{"number", "null"}, score["type"])
}
