package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("gen")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "gen-"))
	// Default NanoID length is 21 plus the "gen-" prefix.
	assert.Len(t, got, 25)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got, err := Generate("book")
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate ID generated: %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("gen")
		assert.NotEmpty(t, got)
	})
}
