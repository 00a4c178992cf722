// Package social implements the workflow that turns published blog posts
// into drafted social media copy stored on their tracker items.
package social

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Section markers the generator is instructed to emit; the parser cuts the
// response at these exact strings.
const (
	markerX        = "=== X CONTENT ==="
	markerLinkedIn = "=== LINKEDIN CONTENT ==="
	markerThreads  = "=== THREADS CONTENT ==="
)

// maxExcerptChars caps the post content included in the prompt.
const maxExcerptChars = 2000

// Content is one set of drafted social posts.
type Content struct {
	X        string
	LinkedIn string
	Threads  string
}

// PromptInput describes the blog post the copy is drafted from.
type PromptInput struct {
	Title       string
	Description string
	Tags        []string
	Content     string
}

// BuildPrompt renders the generation prompt, with the post content
// truncated to the excerpt cap.
func BuildPrompt(input PromptInput) string {
	excerpt := input.Content
	suffix := ""
	if len(excerpt) > maxExcerptChars {
		cut := maxExcerptChars
		// back off to a rune boundary so the cut never splits a rune
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
		suffix = "..."
	}

	return fmt.Sprintf(`Generate social media content for this blog post:

Title: %s
Description: %s
Tags: %s

Content Preview (first %d chars):
%s%s

Please create three sections:

1. X (Twitter) Thread:
   - Create 9 tweets, each under 280 characters
   - Separate each tweet with "---"
   - Start with "Tweet 1/9:", "Tweet 2/9:", etc.
   - Focus on key insights and takeaways

2. LinkedIn Post:
   - Professional tone, 1300-2000 characters
   - Add relevant hashtags at the end
   - Focus on business value and lessons learned

3. Threads Post:
   - Create 9 posts, casual and engaging tone
   - Separate each post with "---"
   - Start with "Post 1/9:", "Post 2/9:", etc.

Format your response EXACTLY like this:

%s
Tweet 1/9:
[tweet content]

---

(etc for all 9 tweets)

%s
[linkedin post content]

%s
Post 1/9:
[post content]

---

(etc for all 9 posts)`,
		input.Title, input.Description, strings.Join(input.Tags, ", "),
		maxExcerptChars, excerpt, suffix,
		markerX, markerLinkedIn, markerThreads)
}

// ParseSections extracts the three marker-delimited sections from a
// generated response. Each section runs up to but excluding the next
// marker (or the end of text) and is stored trimmed; a missing marker
// yields an empty section.
func ParseSections(raw string) Content {
	return Content{
		X:        section(raw, markerX, markerLinkedIn, markerThreads),
		LinkedIn: section(raw, markerLinkedIn, markerThreads),
		Threads:  section(raw, markerThreads),
	}
}

func section(raw, start string, stops ...string) string {
	idx := strings.Index(raw, start)
	if idx < 0 {
		return ""
	}

	rest := raw[idx+len(start):]
	for _, stop := range stops {
		if cut := strings.Index(rest, stop); cut >= 0 {
			rest = rest[:cut]
		}
	}

	return strings.TrimSpace(rest)
}
