package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Item is one labeled evaluation unit. ContextIDs is the gold relevance set,
// Contexts holds the passage text for each ID at the same position (or is
// empty when the source carried no passage text).
type Item struct {
	Question   string   `json:"question" yaml:"question"`
	ContextIDs []string `json:"context_ids" yaml:"context_ids"`
	Contexts   []string `json:"contexts" yaml:"contexts"`
	Answers    []string `json:"answers" yaml:"answers"`
}

// StringList decodes either a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = list
	return nil
}

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// rawItem accepts the singular and plural spellings found in QA datasets.
type rawItem struct {
	Question   *string    `json:"question" yaml:"question"`
	ContextIDs StringList `json:"context_ids" yaml:"context_ids"`
	ContextID  StringList `json:"context_id" yaml:"context_id"`
	Contexts   StringList `json:"contexts" yaml:"contexts"`
	Context    StringList `json:"context" yaml:"context"`
	Answers    StringList `json:"answers" yaml:"answers"`
	Answer     StringList `json:"answer" yaml:"answer"`
}
