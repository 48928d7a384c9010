package agent

import (
	"agent-lab/analyzers"
	"agent-lab/domain"
)

// ToolResults collects the verdicts the reasoning loop gathered. Any
// field may be nil when the model chose not to invoke that tool;
// Assemble fills the gaps with defaults.
type ToolResults struct {
	Summary  *analyzers.SummaryResult
	Priority *analyzers.PriorityResult
	Category *analyzers.CategoryResult
	Replies  *analyzers.ReplyResult
	Tasks    *analyzers.TaskResult
}

// record files one tool result under its slot. Error payloads and
// unknown result shapes are dropped, leaving the slot at its default.
func (tr *ToolResults) record(result any) {
	switch v := result.(type) {
	case analyzers.SummaryResult:
		tr.Summary = &v
	case analyzers.PriorityResult:
		tr.Priority = &v
	case analyzers.CategoryResult:
		tr.Category = &v
	case analyzers.ReplyResult:
		tr.Replies = &v
	case analyzers.TaskResult:
		tr.Tasks = &v
	}
}

// Assemble merges tool results and the model synthesis into the
// canonical verdict. Missing results default to MEDIUM priority,
// "other" category and empty optional fields, so a partial tool run
// still yields a complete record. Actions are derived last, from the
// merged record.
func Assemble(msg domain.Message, synthesis string, results ToolResults) domain.Analysis {
	record := domain.Analysis{
		Message:   msg.Content,
		Sender:    msg.Sender,
		Narrative: synthesis,
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryOther,
	}
	if record.Sender == "" {
		record.Sender = domain.UnknownSender
	}

	if results.Summary != nil {
		record.Summary = results.Summary.Summary
		record.Language = results.Summary.Language
	}
	if results.Priority != nil {
		record.Priority = results.Priority.Priority
	}
	if results.Category != nil {
		record.Category = results.Category.Category
	}
	if results.Replies != nil && len(results.Replies.Suggestions) > 0 {
		record.SuggestedReply = results.Replies.Suggestions[0]
	}
	if results.Tasks != nil {
		record.Tasks = make([]domain.Task, 0, len(results.Tasks.Tasks))
		for _, task := range results.Tasks.Tasks {
			record.Tasks = append(record.Tasks, domain.Task{
				Title:       task.Title,
				Description: task.Description,
				Priority:    task.Priority,
			})
		}
	}

	record.Actions = domain.DeriveActions(record)
	return record
}
