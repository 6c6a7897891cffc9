package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder by file extension, JSON being the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func LoadFromFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a dataset and normalizes every item. The whole load fails on
// the first malformed item.
func Parse(data []byte, format Format) ([]Item, error) {
	var raws []rawItem

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, apperr.NewValidationWrap("parse dataset JSON", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, apperr.NewValidationWrap("parse dataset YAML", err)
		}
	default:
		return nil, apperr.NewValidationf("unsupported dataset format %q", format)
	}

	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		item, err := normalize(i, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func normalize(index int, raw rawItem) (Item, error) {
	if raw.Question == nil || strings.TrimSpace(*raw.Question) == "" {
		return Item{}, apperr.NewValidationf("item %d: question is required", index)
	}

	answers := firstNonEmpty(raw.Answers, raw.Answer)
	if len(answers) == 0 {
		return Item{}, apperr.NewValidationf("item %d: at least one answer is required", index)
	}

	ids := firstNonEmpty(raw.ContextIDs, raw.ContextID)
	contexts := firstNonEmpty(raw.Contexts, raw.Context)
	if len(contexts) > 0 && len(contexts) != len(ids) {
		return Item{}, apperr.NewValidationf(
			"item %d: %d contexts for %d context ids", index, len(contexts), len(ids),
		)
	}

	return Item{
		Question:   *raw.Question,
		ContextIDs: ids,
		Contexts:   contexts,
		Answers:    answers,
	}, nil
}

func firstNonEmpty(lists ...StringList) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return append([]string(nil), l...)
		}
	}
	return []string{}
}
