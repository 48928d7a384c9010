package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"agent-lab/domain"
	apperrors "agent-lab/errors"
)

const replyPreviewRunes = 100

// ApprovalGate asks a human to approve or reject each proposed action
// before anything is executed. No action ever bypasses it.
type ApprovalGate struct {
	in  *bufio.Reader
	out io.Writer
	log *slog.Logger
}

// NewApprovalGate reuses the caller's buffered reader when given one,
// so the gate and an interactive prompt can share stdin without
// swallowing each other's lines.
func NewApprovalGate(in io.Reader, out io.Writer, log *slog.Logger) *ApprovalGate {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	return &ApprovalGate{in: reader, out: out, log: log}
}

// Review walks the proposed actions in order and returns the approved
// subset, order preserved. An empty answer, "y" or "yes" (any case)
// approves; anything else rejects. Rejections are logged and leave no
// other trace. When input ends mid-batch or the context is canceled
// the whole batch is abandoned: no partial approvals escape.
func (g *ApprovalGate) Review(ctx context.Context, record domain.Analysis) ([]domain.Action, error) {
	actions := record.Actions
	if len(actions) == 0 {
		return nil, nil
	}

	ruler := strings.Repeat("-", rulerWidth)
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, ruler)
	fmt.Fprintln(g.out, "  APPROVAL REQUIRED")
	fmt.Fprintln(g.out, ruler)

	var approved []domain.Action
	for i, action := range actions {
		if ctx.Err() != nil {
			g.log.Warn("interrupted during approval, abandoning batch",
				slog.Int("pending", len(actions)-i))
			return nil, fmt.Errorf("%w: %d actions pending", apperrors.ErrBatchAbandoned, len(actions)-i)
		}

		fmt.Fprintf(g.out, "\n[ACTION %d] %s\n", i+1, action.Description())

		switch a := action.(type) {
		case domain.SendReply:
			fmt.Fprintf(g.out, "  Reply: %s...\n", preview(a.Reply, replyPreviewRunes))
		case domain.CreateTask:
			fmt.Fprintf(g.out, "  Task: %s\n", a.Task)
		}

		fmt.Fprint(g.out, "\n  Approve this action? [Y/n]: ")
		line, err := g.in.ReadString('\n')
		if err != nil && line == "" {
			g.log.Warn("approval input closed, abandoning batch",
				slog.Int("pending", len(actions)-i))
			return nil, fmt.Errorf("%w: %d actions pending", apperrors.ErrBatchAbandoned, len(actions)-i)
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "" || answer == "y" || answer == "yes" {
			approved = append(approved, action)
			fmt.Fprintln(g.out, "  -> APPROVED")
		} else {
			fmt.Fprintln(g.out, "  -> REJECTED")
			g.log.Info("action rejected",
				slog.String("type", string(action.Type())),
				slog.String("description", action.Description()))
		}
	}
	return approved, nil
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
