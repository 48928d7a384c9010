package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"agent-lab/domain"
	apperrors "agent-lab/errors"
)

const (
	fileTimestampLayout = "20060102_150405"
	bodyTimestampLayout = "2006-01-02 15:04:05"
)

// ExecutionOutcome reports what happened to one approved action.
type ExecutionOutcome struct {
	Action domain.Action
	Path   string
	Err    error
}

// Executor materializes approved actions as files under the actions
// directory and appends an audit entry per batch. One failing action
// never stops the rest of the batch.
type Executor struct {
	actionsDir string
	logsDir    string
	out        io.Writer
	log        *slog.Logger
	now        func() time.Time
}

func NewExecutor(actionsDir, logsDir string, out io.Writer, log *slog.Logger) *Executor {
	return &Executor{
		actionsDir: actionsDir,
		logsDir:    logsDir,
		out:        out,
		log:        log,
		now:        time.Now,
	}
}

// Execute runs the approved actions in order. Every attempted action
// lands in the audit entry regardless of its outcome; a failed audit
// write is the only batch-level error.
func (e *Executor) Execute(record domain.Analysis, approved []domain.Action) ([]ExecutionOutcome, error) {
	if len(approved) == 0 {
		return nil, nil
	}

	outcomes := make([]ExecutionOutcome, 0, len(approved))
	for _, action := range approved {
		outcome := ExecutionOutcome{Action: action}

		switch a := action.(type) {
		case domain.SendReply:
			outcome.Path, outcome.Err = e.writeReplyDraft(record, a)
		case domain.CreateTask:
			outcome.Path, outcome.Err = e.writeTask(record, a)
		default:
			outcome.Err = fmt.Errorf("unsupported action type: %s", action.Type())
		}

		if outcome.Err != nil {
			fmt.Fprintf(e.out, "ERROR: Failed to execute %s - %v\n", action.Description(), outcome.Err)
			e.log.Error("action failed",
				slog.String("type", string(action.Type())), slog.Any("error", outcome.Err))
		} else {
			fmt.Fprintf(e.out, "SUCCESS: %s\n", action.Description())
		}
		outcomes = append(outcomes, outcome)
	}

	if err := e.writeAudit(record, approved); err != nil {
		return outcomes, fmt.Errorf("%w: %v", apperrors.ErrAuditWriteFailed, err)
	}
	return outcomes, nil
}

func (e *Executor) writeReplyDraft(record domain.Analysis, action domain.SendReply) (string, error) {
	now := e.now()
	content := fmt.Sprintf(`Reply Draft
Generated: %s
To: %s
Priority: %s

---

%s

---

Note: This is a draft. Review and send manually.
`, now.Format(bodyTimestampLayout), action.Recipient, record.Priority, action.Reply)

	path, err := e.writeUnique(e.actionsDir, "reply_draft_"+now.Format(fileTimestampLayout), ".txt", []byte(content))
	if err != nil {
		return "", err
	}
	fmt.Fprintf(e.out, "  -> Draft saved: %s\n", path)
	return path, nil
}

func (e *Executor) writeTask(record domain.Analysis, action domain.CreateTask) (string, error) {
	now := e.now()
	content := fmt.Sprintf(`Task
Created: %s
Priority: %s

---

%s

---

Source: %s
Category: %s
`, now.Format(bodyTimestampLayout), action.Priority, action.Task, record.Sender, record.Category)

	path, err := e.writeUnique(e.actionsDir, "task_"+now.Format(fileTimestampLayout), ".txt", []byte(content))
	if err != nil {
		return "", err
	}
	fmt.Fprintf(e.out, "  -> Task created: %s\n", path)
	return path, nil
}

func (e *Executor) writeAudit(record domain.Analysis, attempted []domain.Action) error {
	now := e.now()
	entry := domain.NewAuditEntry(record, attempted, now)

	payload, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	path, err := e.writeUnique(e.logsDir, "execution_"+now.Format(fileTimestampLayout), ".json", payload)
	if err != nil {
		return err
	}
	e.log.Info("audit entry written",
		slog.String("path", path), slog.Int("actions", len(attempted)))
	return nil
}

// writeUnique writes to <dir>/<base><ext>, appending _2, _3, ... when a
// batch produces several files within the same second.
func (e *Executor) writeUnique(dir, base, ext string, content []byte) (string, error) {
	path := filepath.Join(dir, base+ext)
	for n := 2; ; n++ {
		if _, err := os.Stat(path); err != nil {
			break
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
