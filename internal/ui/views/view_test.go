package views

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchdeck/internal/domain"
)

func TestRenderResultsTruncatesOnRuneBoundary(t *testing.T) {
	r := NewRenderer()
	results := []domain.SearchResult{{
		ID:          "1",
		Title:       strings.Repeat("日本語のタイトル", 10),
		Summary:     strings.Repeat("長い要約テキスト", 20),
		Author:      "著者",
		Category:    "技術",
		PublishedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}}

	out := r.RenderResults(results, 0, 30)
	require.NotEmpty(t, out)
	assert.True(t, utf8.ValidString(out), "truncation must not split a multi-byte rune")
	assert.Contains(t, out, "...")
}

func TestRenderResultsNarrowAsciiWidth(t *testing.T) {
	r := NewRenderer()
	results := []domain.SearchResult{{
		ID:          "1",
		Title:       "a perfectly ordinary but quite long result title",
		Summary:     "line one\nline two",
		Author:      "ann",
		PublishedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}}

	out := r.RenderResults(results, 0, 20)
	assert.True(t, utf8.ValidString(out))
	assert.NotContains(t, out, "line one\nline two", "summary newlines are flattened")
}
