package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	assert.Equal(t, 0.33, RoundDecimal(1.0/3.0, 2))
	assert.Equal(t, 0.6667, RoundDecimal(2.0/3.0, 4))
	assert.Equal(t, 1.0, RoundDecimal(0.99999, 3))
	assert.Equal(t, -0.5, RoundDecimal(-0.49999, 2))
}

func TestSplitNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:3000", "https://example.org"},
		SplitNonEmpty(" http://localhost:3000, ,https://example.org,", ","))
	assert.Nil(t, SplitNonEmpty("", ","))
}
