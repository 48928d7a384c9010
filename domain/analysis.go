package domain

import "strings"

// Priority is the urgency level of a message.
// It is always one of the enumerated values; parsers never return anything else.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ParsePriority maps free text to a Priority, defaulting to MEDIUM.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Category is the broad classification of a message.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryFinance  Category = "finance"
	CategoryOther    Category = "other"
)

// ParseCategory maps free text to a Category, defaulting to "other".
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryWork:
		return CategoryWork
	case CategoryPersonal:
		return CategoryPersonal
	case CategoryStudy:
		return CategoryStudy
	case CategoryFinance:
		return CategoryFinance
	default:
		return CategoryOther
	}
}

// Task is one actionable item extracted from a message.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // urgent, high or normal, as scored by the extractor
}

// Analysis is the canonical merged verdict for one message.
// Priority and Category always hold one of their enumerated values;
// every other field may be absent or empty.
type Analysis struct {
	Message        string   `json:"message"`
	Sender         string   `json:"sender"`
	Narrative      string   `json:"analysis,omitempty"` // LLM synthesis or empty for the heuristic path
	Summary        string   `json:"summary,omitempty"`
	Language       string   `json:"language,omitempty"` // ISO 639-1 code of the detected language
	Priority       Priority `json:"priority"`
	Category       Category `json:"category"`
	SuggestedReply string   `json:"suggested_reply,omitempty"`
	Tasks          []Task   `json:"tasks,omitempty"`
	Actions        []Action `json:"-"`
	Error          string   `json:"error,omitempty"` // diagnostic when the agent loop failed
}

// Failed reports whether this verdict is an error payload produced by
// the agent loop's containment boundary.
func (a Analysis) Failed() bool {
	return a.Error != ""
}
