package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	t.Run("WithoutParams", func(t *testing.T) {
		key := GenerateCacheKey("quiz", "url", "abc123")
		assert.Equal(t, "wikiquiz:quiz:url:abc123", key)
	})

	t.Run("WithParams", func(t *testing.T) {
		key := GenerateCacheKey("quiz", "url", "abc123", "v1", "full")
		assert.Equal(t, "wikiquiz:quiz:url:abc123:v1_full", key)
	})
}

func TestHashURL(t *testing.T) {
	h1 := HashURL("https://en.wikipedia.org/wiki/Ada_Lovelace")
	h2 := HashURL("https://en.wikipedia.org/wiki/Ada_Lovelace")
	h3 := HashURL("https://en.wikipedia.org/wiki/Alan_Turing")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
	assert.NotContains(t, h1, ":")
}
