package prompt

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
)

const (
	KeyQuestion = "question"
	KeyPassages = "passages"
)

// DefaultText is the grounded QA prompt. Changing it invalidates comparisons
// with earlier result files.
const DefaultText = "You are a knowledgeable assistant. Use the following evidence passages to answer the question as specifically as possible.\n" +
	"{{passages}}" +
	"\n\nQuestion: {{question}}\nAnswer:"

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

var knownPlaceholders = map[string]bool{
	KeyQuestion: true,
	KeyPassages: true,
}

type Template struct {
	Name string
	Text string
}

func Default() *Template {
	return &Template{Name: "default", Text: DefaultText}
}

func New(name, text string) (*Template, error) {
	t := &Template{Name: name, Text: text}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func LoadFromFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}
	return New(path, string(data))
}

// Placeholders lists the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var params []string

	matches := placeholderRegex.FindAllStringSubmatch(t.Text, -1)
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			params = append(params, m[1])
		}
	}

	return params
}

func (t *Template) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return apperr.NewValidationf("prompt template %q is empty", t.Name)
	}

	found := make(map[string]bool)
	for _, p := range t.Placeholders() {
		if !knownPlaceholders[p] {
			return apperr.NewValidationf("prompt template %q has unknown placeholder {{%s}}", t.Name, p)
		}
		found[p] = true
	}
	for _, required := range []string{KeyQuestion, KeyPassages} {
		if !found[required] {
			return apperr.NewValidationf("prompt template %q has no {{%s}} placeholder", t.Name, required)
		}
	}

	return nil
}

// Render substitutes the question and the numbered passages in one pass, so
// braces inside a question or passage are left untouched.
func (t *Template) Render(question string, passages []string) string {
	values := map[string]string{
		KeyQuestion: question,
		KeyPassages: FormatPassages(passages),
	}

	return placeholderRegex.ReplaceAllStringFunc(t.Text, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := values[key]; ok {
			return val
		}
		return match
	})
}

// FormatPassages labels passages "Passage N:" by 1-based rank and separates
// them with a blank line.
func FormatPassages(passages []string) string {
	blocks := make([]string, len(passages))
	for i, p := range passages {
		blocks[i] = fmt.Sprintf("Passage %d:\n%s", i+1, p)
	}
	return strings.Join(blocks, "\n\n")
}
