package analyzers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agent-lab/domain"
)

func TestCategorize(t *testing.T) {
	set := newTestSet(t)

	tests := []struct {
		name     string
		content  string
		expected domain.Category
	}{
		{
			name:     "Work message",
			content:  "The team meeting about the client project is scheduled at the office, bring the report.",
			expected: domain.CategoryWork,
		},
		{
			name:     "Finance message",
			content:  "The invoice for the bank loan payment is due, check the account budget.",
			expected: domain.CategoryFinance,
		},
		{
			name:     "Study message",
			content:  "The professor moved the exam, review the lecture notes before class at the university.",
			expected: domain.CategoryStudy,
		},
		{
			name:     "Personal message",
			content:  "Dinner with family this weekend for your birthday, bring a friend to the party.",
			expected: domain.CategoryPersonal,
		},
		{
			name:     "No signal",
			content:  "zzz qqq xxx",
			expected: domain.CategoryOther,
		},
		{
			name:     "Empty message",
			content:  "",
			expected: domain.CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := set.Categorize(tt.content)
			require.Equal(t, tt.expected, result.Category)
		})
	}
}

func TestCategorize_TieGoesToFirstCategory(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	// One work keyword, one finance keyword: work is checked first.
	result := set.Categorize("meeting invoice")
	req.Equal(domain.CategoryWork, result.Category)
}

func TestCategorize_ReasoningListsAllScores(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	result := set.Categorize("meeting about the budget")
	req.Contains(result.Reasoning, "work: 1")
	req.Contains(result.Reasoning, "finance: 1")
	req.Contains(result.Reasoning, "personal: 0")
	req.Contains(result.Reasoning, "study: 0")
}
