package social

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestParseSections(t *testing.T) {
	t.Parallel()

	raw := `Here you go:

=== X CONTENT ===
Tweet 1/9:
first tweet

---

Tweet 2/9:
second tweet

=== LINKEDIN CONTENT ===
A professional post.

#golang

=== THREADS CONTENT ===
Post 1/9:
casual post`

	content := ParseSections(raw)
	require.Equal(t, "Tweet 1/9:\nfirst tweet\n\n---\n\nTweet 2/9:\nsecond tweet", content.X)
	require.Equal(t, "A professional post.\n\n#golang", content.LinkedIn)
	require.Equal(t, "Post 1/9:\ncasual post", content.Threads)
}

func TestParseSectionsMissingMarkers(t *testing.T) {
	t.Parallel()

	content := ParseSections("no markers at all")
	require.Equal(t, Content{}, content)

	content = ParseSections("=== LINKEDIN CONTENT ===\nonly linkedin")
	require.Empty(t, content.X)
	require.Equal(t, "only linkedin", content.LinkedIn)
	require.Empty(t, content.Threads)
}

func TestBuildPromptExcerptCap(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", maxExcerptChars+500)
	prompt := BuildPrompt(PromptInput{
		Title:   "A post",
		Tags:    []string{"go", "web"},
		Content: long,
	})

	require.Contains(t, prompt, "Title: A post")
	require.Contains(t, prompt, "Tags: go, web")
	require.Contains(t, prompt, strings.Repeat("a", maxExcerptChars)+"...")
	require.NotContains(t, prompt, strings.Repeat("a", maxExcerptChars+1))

	short := BuildPrompt(PromptInput{Title: "t", Content: "tiny"})
	require.Contains(t, short, "tiny\n")
	require.NotContains(t, short, "tiny...")
}

// TestBuildPromptExcerptCapRuneBoundary verifies the cap never splits a
// multi-byte rune, keeping the prompt valid UTF-8.
func TestBuildPromptExcerptCapRuneBoundary(t *testing.T) {
	t.Parallel()

	// 3-byte runes that do not divide the byte cap evenly, so the naive
	// byte cut would land mid-rune
	long := strings.Repeat("日", maxExcerptChars)
	prompt := BuildPrompt(PromptInput{Title: "t", Content: long})

	require.True(t, utf8.ValidString(prompt))
	require.NotContains(t, prompt, string(utf8.RuneError))
	require.Contains(t, prompt, "日...")
}
