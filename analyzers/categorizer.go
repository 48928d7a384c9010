package analyzers

import (
	"fmt"
	"strings"

	"agent-lab/domain"
)

var categoryOrder = []string{"work", "personal", "study", "finance"}

var categoryKeywords = map[string][]string{
	"work": {
		"meeting", "colleague", "boss", "company", "project", "client", "deadline",
		"report", "presentation", "office", "team", "department", "employee", "employer",
		"schedule", "calendar", "work", "business", "corporate", "professional",
		"performance", "review", "task", "assignment", "agenda", "conference",
	},
	"personal": {
		"family", "friend", "parent", "child", "wife", "husband", "spouse", "relative",
		"birthday", "celebration", "vacation", "holiday", "weekend", "dinner", "party",
		"social", "personal", "relationship", "home", "hobby", "leisure", "fun",
	},
	"study": {
		"lecture", "professor", "student", "assignment", "homework", "exam", "test",
		"course", "class", "school", "university", "college", "education", "learning",
		"research", "thesis", "paper", "study", "academic", "grade", "degree", "campus",
	},
	"finance": {
		"money", "payment", "bill", "invoice", "bank", "account", "credit", "debit",
		"budget", "expense", "investment", "loan", "tax", "refund", "fee", "cost",
		"price", "financial", "finances", "cash", "salary", "income", "revenue",
	},
}

// CategoryResult is the categorizer verdict.
type CategoryResult struct {
	Category   domain.Category `json:"category"`
	Confidence float64         `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

// Categorize counts category-specific keyword occurrences and picks the
// highest scoring category, falling back to "other" when the signal is
// absent or too weak relative to the message length.
func (s *Set) Categorize(content string) CategoryResult {
	scores := make([]int, len(s.categories))
	maxIdx, maxScore, total := 0, 0, 0
	for i, matcher := range s.categories {
		scores[i] = matcher.keywords.occurrences(content)
		total += scores[i]
		if scores[i] > maxScore {
			maxIdx, maxScore = i, scores[i]
		}
	}

	category := domain.ParseCategory(s.categories[maxIdx].name)

	totalWords := len(tokenize(content))
	confidence := 0.5
	if totalWords > 0 {
		confidence = min(float64(maxScore)/max(float64(totalWords)*0.1, 1), 1.0)
	}

	if maxScore == 0 {
		category = domain.CategoryOther
		confidence = 0.3
	} else if confidence < 0.2 {
		mean := float64(total) / float64(len(s.categories))
		if float64(maxScore) < mean*1.5 {
			category = domain.CategoryOther
			confidence = 0.4
		}
	}

	parts := make([]string, len(s.categories))
	for i, matcher := range s.categories {
		parts[i] = fmt.Sprintf("%s: %d", matcher.name, scores[i])
	}

	return CategoryResult{
		Category:   category,
		Confidence: confidence,
		Reasoning: fmt.Sprintf("Found %d category-specific keywords. Scores: %s",
			maxScore, strings.Join(parts, ", ")),
	}
}
