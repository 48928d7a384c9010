package analyzers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize_ShortMessage(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	result := set.Summarize("Lunch at noon?")
	req.Equal("Lunch at noon?", result.Summary)
	req.Empty(result.KeyPoints)
}

func TestSummarize_KeyPointsFromImportanceMarkers(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	content := "Hello team,\n\nThis is important: the budget review happens on Friday.\nBring snacks."
	result := set.Summarize(content)

	req.Len(result.KeyPoints, 1)
	req.Contains(result.KeyPoints[0], "important")
}

func TestSummarize_FallbackKeyPointsAreLongestLines(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	content := strings.Join([]string{
		"short",
		"- first bullet",
		"- a somewhat longer second bullet line",
		"this line is deliberately written long enough to cross the length threshold quite easily",
	}, "\n")
	result := set.Summarize(content)

	req.Len(result.KeyPoints, 3)
	req.Contains(result.KeyPoints[0], "length threshold")
}

func TestSummarize_LongMessageTruncatesToFiftyWords(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	words := make([]string, 80)
	for i := range words {
		words[i] = "word"
	}
	result := set.Summarize(strings.Join(words, "\n"))

	req.True(strings.HasSuffix(result.Summary, "..."))
	req.Len(strings.Fields(strings.TrimSuffix(result.Summary, "...")), 50)
}

func TestExtractKeywords(t *testing.T) {
	req := require.New(t)

	keywords := extractKeywords("The quarterly budget budget meeting covers marketing and the new positions")
	req.Contains(keywords, "quarterly")
	req.Contains(keywords, "budget")
	req.NotContains(keywords, "the")
	req.NotContains(keywords, "and")
	req.LessOrEqual(len(keywords), 5)

	// Duplicates collapse.
	count := 0
	for _, k := range keywords {
		if k == "budget" {
			count++
		}
	}
	req.Equal(1, count)
}

func TestDetectLanguage(t *testing.T) {
	req := require.New(t)
	req.Equal("en", detectLanguage("Please review the quarterly budget report before the meeting tomorrow morning."))
	req.Equal("", detectLanguage("zz"))
}
