package domain

import "fmt"

// ActionType tags the two kinds of side-effecting operations the
// pipeline can propose. No other action kinds exist.
type ActionType string

const (
	ActionSendReply  ActionType = "send_reply"
	ActionCreateTask ActionType = "create_task"
)

// Action is a proposed side-effecting operation derived from an Analysis.
// Actions are ephemeral: derived by the assembler, filtered by the
// approval gate, discarded after execution.
type Action interface {
	Type() ActionType
	Description() string
}

// SendReply proposes sending the suggested reply back to the sender.
type SendReply struct {
	Recipient string
	Reply     string
}

func (SendReply) Type() ActionType { return ActionSendReply }

func (SendReply) Description() string { return "Send suggested reply" }

// CreateTask proposes recording one extracted task.
type CreateTask struct {
	Task     string
	Priority Priority
}

func (CreateTask) Type() ActionType { return ActionCreateTask }

func (a CreateTask) Description() string { return fmt.Sprintf("Create task: %s", a.Task) }

// DeriveActions maps a verdict to its candidate actions: one SendReply
// first when a suggested reply exists, then one CreateTask per extracted
// task in order. The derivation is deterministic and idempotent.
func DeriveActions(a Analysis) []Action {
	var actions []Action
	if a.SuggestedReply != "" {
		actions = append(actions, SendReply{Recipient: a.Sender, Reply: a.SuggestedReply})
	}
	for _, task := range a.Tasks {
		actions = append(actions, CreateTask{Task: task.Title, Priority: a.Priority})
	}
	return actions
}
