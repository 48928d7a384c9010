package domain

import "time"

// AuditAction is the persisted trace of one executed action.
type AuditAction struct {
	Type        ActionType `json:"type"`
	Description string     `json:"description"`
}

// AuditEntry summarizes one execution batch. Entries are append-only:
// one JSON file per batch, never mutated or deleted by this system.
type AuditEntry struct {
	Timestamp       string        `json:"timestamp"`
	Sender          string        `json:"sender"`
	Priority        Priority      `json:"priority"`
	Category        Category      `json:"category"`
	ActionsExecuted int           `json:"actions_executed"`
	Actions         []AuditAction `json:"actions"`
}

// NewAuditEntry builds the audit record for a batch of attempted actions.
func NewAuditEntry(record Analysis, actions []Action, at time.Time) AuditEntry {
	entry := AuditEntry{
		Timestamp:       at.Format(time.RFC3339),
		Sender:          record.Sender,
		Priority:        record.Priority,
		Category:        record.Category,
		ActionsExecuted: len(actions),
		Actions:         make([]AuditAction, 0, len(actions)),
	}
	for _, action := range actions {
		entry.Actions = append(entry.Actions, AuditAction{
			Type:        action.Type(),
			Description: action.Description(),
		})
	}
	return entry
}
