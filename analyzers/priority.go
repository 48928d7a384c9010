package analyzers

import (
	"fmt"
	"strings"

	"agent-lab/domain"
)

var urgentIndicators = []string{
	"urgent", "asap", "immediately", "right now", "today", "within hours",
	"crucial", "critical", "emergency", "deadline", "cannot wait",
	"high priority", "top priority", "priority 1", "time sensitive",
}

var lowIndicators = []string{
	"whenever", "whenever convenient", "take your time", "optional",
	"nice to have", "eventually", "someday", "not urgent", "whenever possible",
}

// timeSensitiveWords are matched against whole tokens, not substrings.
var timeSensitiveWords = map[string]struct{}{
	"tomorrow": {}, "meeting": {}, "due": {}, "report": {}, "review": {},
}

// PriorityResult is the priority detector verdict.
type PriorityResult struct {
	Priority   domain.Priority `json:"priority"`
	Confidence float64         `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

// DetectPriority scores urgency from indicator phrases. Each indicator
// counts at most once no matter how often it repeats; ties between the
// urgent and low families resolve to MEDIUM. A message with no urgency
// markers but several time-sensitive terms is still MEDIUM, with the
// confidence nudged up.
func (s *Set) DetectPriority(content string) PriorityResult {
	urgentCount := s.urgent.distinct(content)
	lowCount := s.low.distinct(content)

	var priority domain.Priority
	var confidence float64
	switch {
	case urgentCount > lowCount:
		priority = domain.PriorityHigh
		confidence = min(0.8+float64(urgentCount)*0.05, 1.0)
	case lowCount > urgentCount:
		priority = domain.PriorityLow
		confidence = min(0.6+float64(lowCount)*0.05, 0.9)
	default:
		priority = domain.PriorityMedium
		confidence = 0.6
	}

	timeSensitiveCount := 0
	for _, word := range tokenize(content) {
		if _, ok := timeSensitiveWords[strings.ToLower(word)]; ok {
			timeSensitiveCount++
		}
	}
	if timeSensitiveCount > 2 && priority == domain.PriorityMedium && confidence == 0.6 {
		confidence = 0.7
	}

	return PriorityResult{
		Priority:   priority,
		Confidence: confidence,
		Reasoning: fmt.Sprintf("Found %d urgent indicators, %d low priority indicators, %d time-sensitive terms",
			urgentCount, lowCount, timeSensitiveCount),
	}
}
