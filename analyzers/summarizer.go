package analyzers

import (
	"sort"
	"strings"

	"github.com/abadojack/whatlanggo"
)

const (
	importantLineLength = 50
	summaryWordCap      = 50
	keyPointCap         = 3
	keywordCap          = 5
	keywordMinLength    = 5
)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// SummaryResult is the summarizer verdict. Field names mirror the wire
// shape the agent loop hands back to the model.
type SummaryResult struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Keywords  []string `json:"keywords"`
	Language  string   `json:"language,omitempty"`
}

// Summarize condenses the message into a short summary with key points
// and keywords. Important lines are the long ones and the ones carrying
// list markers; key points are lines naming importance outright.
func (s *Set) Summarize(content string) SummaryResult {
	var summaryLines, keyPoints []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > importantLineLength || strings.HasPrefix(line, "-") ||
			strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") ||
			strings.HasPrefix(line, "#") {
			summaryLines = append(summaryLines, line)
		}
		if containsAny(strings.ToLower(line), "important", "urgent", "key", "critical", "main") {
			keyPoints = append(keyPoints, line)
		}
	}

	// No explicit key points: fall back to the longest important lines.
	if len(keyPoints) == 0 {
		sorted := make([]string, len(summaryLines))
		copy(sorted, summaryLines)
		sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
		keyPoints = append(keyPoints, sorted[:min(keyPointCap, len(sorted))]...)
	}

	var summary string
	if len(summaryLines) == 0 {
		words := tokenize(content)
		summary = strings.Join(words[:min(summaryWordCap, len(words))], " ")
		if len(words) > summaryWordCap {
			summary += "..."
		}
	} else {
		summary = strings.Join(summaryLines[:min(keyPointCap, len(summaryLines))], " ")
	}

	return SummaryResult{
		Summary:   summary,
		KeyPoints: keyPoints,
		Keywords:  extractKeywords(content),
		Language:  detectLanguage(content),
	}
}

// extractKeywords picks the first few distinct long words that are not
// stop words, in order of appearance.
func extractKeywords(content string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0, keywordCap)
	for _, word := range tokenize(strings.ToLower(content)) {
		if len(word) < keywordMinLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == keywordCap {
			break
		}
	}
	return keywords
}

func detectLanguage(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
