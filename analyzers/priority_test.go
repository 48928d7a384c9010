package analyzers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agent-lab/domain"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	set, err := NewSet()
	require.NoError(t, err)
	return set
}

func TestDetectPriority(t *testing.T) {
	set := newTestSet(t)

	tests := []struct {
		name     string
		content  string
		expected domain.Priority
	}{
		{
			name:     "Urgent indicators win",
			content:  "URGENT: the production server is down, this is critical, respond immediately.",
			expected: domain.PriorityHigh,
		},
		{
			name:     "Low indicators win",
			content:  "Take your time with this one, it's optional and nice to have.",
			expected: domain.PriorityLow,
		},
		{
			name:     "No indicators",
			content:  "Here are the notes from yesterday.",
			expected: domain.PriorityMedium,
		},
		{
			name:     "Tie resolves to medium",
			content:  "This is urgent but also take your time.",
			expected: domain.PriorityMedium,
		},
		{
			name:     "Empty message",
			content:  "",
			expected: domain.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := set.DetectPriority(tt.content)
			require.Equal(t, tt.expected, result.Priority)
		})
	}
}

func TestDetectPriority_RepeatedIndicatorCountsOnce(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	once := set.DetectPriority("This is urgent.")
	thrice := set.DetectPriority("urgent urgent urgent")

	req.Equal(domain.PriorityHigh, once.Priority)
	req.Equal(once.Confidence, thrice.Confidence)
}

func TestDetectPriority_ConfidenceGrowsWithDistinctIndicators(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	one := set.DetectPriority("This is urgent.")
	two := set.DetectPriority("This is urgent and critical.")

	req.InDelta(0.85, one.Confidence, 1e-9)
	req.Greater(two.Confidence, one.Confidence)
	req.LessOrEqual(two.Confidence, 1.0)
}

func TestDetectPriority_TimeSensitiveNudge(t *testing.T) {
	req := require.New(t)
	set := newTestSet(t)

	result := set.DetectPriority("The review of the report is due before the meeting tomorrow")
	req.Equal(domain.PriorityMedium, result.Priority)
	req.InDelta(0.7, result.Confidence, 1e-9)
}

func TestDetectPriority_Deterministic(t *testing.T) {
	set := newTestSet(t)
	content := "Please finish the critical deadline work today, ASAP."
	require.Equal(t, set.DetectPriority(content), set.DetectPriority(content))
}
