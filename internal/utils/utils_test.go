package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCerpenID(t *testing.T) {
	pattern := regexp.MustCompile(`^c[a-z0-9]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewCerpenID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "id %s generated twice", id)
		seen[id] = true
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("Kata **penting**.\n\n<script>alert(1)</script>")
	assert.Contains(t, out, "<strong>penting</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeHTMLKeepsImages(t *testing.T) {
	out := SanitizeHTML(`<p>teks</p><img src="https://example.com/a.jpg"><script>x</script>`)
	assert.Contains(t, out, "<img")
	assert.NotContains(t, out, "script")
}

func TestCacheTTL(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	c.Set("k", "v", 50*time.Millisecond)
	assert.Equal(t, "v", c.Get("k"))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, c.Get("k"))
}

func TestCacheDelete(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	c.Set("k", 1, time.Minute)
	c.Delete("k")
	assert.Nil(t, c.Get("k"))
}
