package social

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestManualGeneratorSections verifies each pasted section terminates on
// two consecutive empty lines, or end of input for the last one.
func TestManualGeneratorSections(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Tweet 1/9: hi",
		"",
		"Tweet 2/9: there",
		"",
		"",
		"A linkedin post",
		"with two lines",
		"",
		"",
		"Post 1/9: threads",
	}, "\n")

	var out bytes.Buffer
	gen := NewManualGenerator(strings.NewReader(input), &out)

	content, err := gen.Generate(context.Background(), PromptInput{Title: "A post"})
	require.NoError(t, err)
	require.Equal(t, "Tweet 1/9: hi\n\nTweet 2/9: there", content.X)
	require.Equal(t, "A linkedin post\nwith two lines", content.LinkedIn)
	require.Equal(t, "Post 1/9: threads", content.Threads)
	require.Contains(t, out.String(), "X (Twitter) thread")
}

func TestManualGeneratorEmptyInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	gen := NewManualGenerator(strings.NewReader(""), &out)

	content, err := gen.Generate(context.Background(), PromptInput{Title: "A post"})
	require.NoError(t, err)
	require.Equal(t, Content{}, content)
}

func TestNewLLMGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewLLMGenerator(LLMSettings{})
	require.ErrorContains(t, err, "api key")
}
