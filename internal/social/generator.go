package social

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/notion-blog/internal/library/llm"
)

// Generator drafts social copy for one blog post.
type Generator interface {
	Generate(ctx context.Context, input PromptInput) (Content, error)
}

// LLMSettings configures the automated generator.
type LLMSettings struct {
	APIBase string
	APIKey  string
	Model   string
}

// LLMGenerator drafts social copy through the Responses API.
type LLMGenerator struct {
	helper *llm.ResponsesHelper
	apiKey string
	model  string
}

// NewLLMGenerator creates an automated generator.
func NewLLMGenerator(settings LLMSettings) (*LLMGenerator, error) {
	if settings.APIKey == "" {
		return nil, errors.New("llm api key is required")
	}

	model := settings.Model
	if model == "" {
		model = "openai/gpt-oss-120b"
	}

	return &LLMGenerator{
		helper: llm.NewResponsesHelper(settings.APIBase, 0),
		apiKey: settings.APIKey,
		model:  model,
	}, nil
}

// Generate builds the prompt, calls the model, and parses the three
// marker-delimited sections out of the response.
func (g *LLMGenerator) Generate(ctx context.Context, input PromptInput) (Content, error) {
	raw, err := g.helper.CreateText(ctx, g.apiKey, llm.ResponseRequest{
		Model:           g.model,
		Input:           BuildPrompt(input),
		MaxOutputTokens: 4096,
	})
	if err != nil {
		return Content{}, errors.Wrap(err, "generate social content")
	}

	return ParseSections(raw), nil
}

// ManualGenerator collects human-pasted copy from an interactive stream
// instead of calling a model.
type ManualGenerator struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewManualGenerator creates a generator reading pasted sections from in.
func NewManualGenerator(in io.Reader, out io.Writer) *ManualGenerator {
	return &ManualGenerator{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Generate prompts for the three sections one after another. Each section
// is free-form multi-line text terminated by two consecutive empty lines
// (or end of input).
func (g *ManualGenerator) Generate(_ context.Context, input PromptInput) (Content, error) {
	fmt.Fprintf(g.out, "Paste the social content for %q.\n", input.Title)
	fmt.Fprintln(g.out, "Finish each section with two consecutive empty lines.")

	var content Content
	for _, sec := range []struct {
		label string
		dst   *string
	}{
		{"X (Twitter) thread", &content.X},
		{"LinkedIn post", &content.LinkedIn},
		{"Threads post", &content.Threads},
	} {
		fmt.Fprintf(g.out, "\n--- %s ---\n", sec.label)
		text, err := g.readSection()
		if err != nil {
			return Content{}, errors.Wrapf(err, "read %s", sec.label)
		}

		*sec.dst = text
	}

	return content, nil
}

func (g *ManualGenerator) readSection() (string, error) {
	var (
		lines      []string
		emptyCount int
	)
	for g.in.Scan() {
		line := g.in.Text()
		if strings.TrimSpace(line) == "" {
			emptyCount++
			if emptyCount >= 2 {
				break
			}
		} else {
			emptyCount = 0
		}

		lines = append(lines, line)
	}
	if err := g.in.Err(); err != nil {
		return "", errors.Wrap(err, "read input")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
