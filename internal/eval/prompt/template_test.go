package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
)

func TestDefault_Render(t *testing.T) {
	got := Default().Render("What is the capital of France?", []string{
		"Paris is the capital of France.",
		"Berlin is the capital of Germany.",
	})

	want := "You are a knowledgeable assistant. Use the following evidence passages to answer the question as specifically as possible.\n" +
		"Passage 1:\nParis is the capital of France." +
		"\n\n" +
		"Passage 2:\nBerlin is the capital of Germany." +
		"\n\nQuestion: What is the capital of France?\nAnswer:"

	assert.Equal(t, want, got)
}

func TestDefault_RenderNoPassages(t *testing.T) {
	got := Default().Render("q?", nil)
	assert.Equal(t,
		"You are a knowledgeable assistant. Use the following evidence passages to answer the question as specifically as possible.\n\n\nQuestion: q?\nAnswer:",
		got)
}

func TestRender_ValuesAreNotRescanned(t *testing.T) {
	tmpl, err := New("t", "Q={{question}} P={{passages}}")
	require.NoError(t, err)

	got := tmpl.Render("what is {{passages}}?", []string{"uses {{question}} literally"})
	assert.Equal(t, "Q=what is {{passages}}? P=Passage 1:\nuses {{question}} literally", got)
}

func TestRender_RepeatedPlaceholder(t *testing.T) {
	tmpl, err := New("t", "{{question}}\n{{passages}}\nAgain: {{question}}")
	require.NoError(t, err)

	got := tmpl.Render("why?", []string{"because"})
	assert.Equal(t, "why?\nPassage 1:\nbecause\nAgain: why?", got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{name: "default", text: DefaultText},
		{name: "empty", text: "  \n", wantErr: "is empty"},
		{name: "no question", text: "{{passages}}", wantErr: "no {{question}} placeholder"},
		{name: "no passages", text: "{{question}}", wantErr: "no {{passages}} placeholder"},
		{name: "unknown placeholder", text: "{{question}} {{passages}} {{context}}", wantErr: "unknown placeholder {{context}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, tt.text)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	tmpl := &Template{Text: "{{question}} {{passages}} {{question}}"}
	assert.Equal(t, []string{"question", "passages"}, tmpl.Placeholders())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Context:\n{{passages}}\nQ: {{question}}\nA:"), 0o644))

	tmpl, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Context:\nPassage 1:\nx\nQ: q\nA:", tmpl.Render("q", []string{"x"}))

	_, err = LoadFromFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestFormatPassages(t *testing.T) {
	assert.Equal(t, "", FormatPassages(nil))
	assert.Equal(t, "Passage 1:\na\n\nPassage 2:\nb\n\nPassage 3:\nc", FormatPassages([]string{"a", "b", "c"}))
}
