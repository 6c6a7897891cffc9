package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lowercase and punctuation", input: "The Cat.", want: "cat"},
		{name: "articles as whole words only", input: "An apple and a theory", want: "apple and theory"},
		{name: "collapse whitespace", input: "  New \t York\n City  ", want: "new york city"},
		{name: "punctuation inside words", input: "U.S.A. rock-and-roll", want: "usa rockandroll"},
		{name: "article revealed after punctuation removal", input: "the, a; an!", want: ""},
		{name: "digits kept", input: "Apollo 11 (1969)", want: "apollo 11 1969"},
		{name: "unicode letters kept", input: "Ünïcödé, Straße!", want: "ünïcödé straße"},
		{name: "underscore is a word character", input: "snake_case!", want: "snake_case"},
		{name: "superscript digits kept", input: "E=mc²", want: "emc²"},
		{name: "vulgar fraction kept", input: "½ cup", want: "½ cup"},
		{name: "roman numeral kept", input: "Louis Ⅻ", want: "louis ⅻ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"The quick, brown fox!", "  A  an THE ", "Paris is the capital of France."}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"capital", "of", "france"}, Tokens("The capital of France."))
	assert.Empty(t, Tokens("the a an ..."))
}
