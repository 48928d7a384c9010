package services

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agent-lab/domain"
	apperrors "agent-lab/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func analysisWithActions(reply string, tasks ...string) domain.Analysis {
	record := domain.Analysis{
		Sender:         "Sarah",
		Priority:       domain.PriorityHigh,
		Category:       domain.CategoryWork,
		SuggestedReply: reply,
	}
	for _, task := range tasks {
		record.Tasks = append(record.Tasks, domain.Task{Title: task})
	}
	record.Actions = domain.DeriveActions(record)
	return record
}

func TestApprovalGate_EmptyInputApprovesAll(t *testing.T) {
	req := require.New(t)

	record := analysisWithActions("Will do.", "Review the report", "Book the room")
	gate := NewApprovalGate(strings.NewReader("\n\n\n"), &bytes.Buffer{}, discardLogger())

	approved, err := gate.Review(context.Background(), record)
	req.NoError(err)
	req.Equal(record.Actions, approved)
}

func TestApprovalGate_Answers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		approved int
	}{
		{
			name:     "Yes approves",
			input:    "yes\ny\n",
			approved: 2,
		},
		{
			name:     "Case insensitive",
			input:    "YES\nY\n",
			approved: 2,
		},
		{
			name:     "Reject first keep second",
			input:    "n\n\n",
			approved: 1,
		},
		{
			name:     "Anything else rejects",
			input:    "maybe\nnope\n",
			approved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			record := analysisWithActions("Will do.", "Review the report")
			gate := NewApprovalGate(strings.NewReader(tt.input), &bytes.Buffer{}, discardLogger())

			approved, err := gate.Review(context.Background(), record)
			req.NoError(err)
			req.Len(approved, tt.approved)
		})
	}
}

func TestApprovalGate_RejectionPreservesOrder(t *testing.T) {
	req := require.New(t)

	record := analysisWithActions("Will do.", "first", "second")
	req.Len(record.Actions, 3)

	// Reject the middle action.
	gate := NewApprovalGate(strings.NewReader("y\nn\ny\n"), &bytes.Buffer{}, discardLogger())
	approved, err := gate.Review(context.Background(), record)
	req.NoError(err)
	req.Len(approved, 2)
	req.Equal(domain.ActionSendReply, approved[0].Type())
	task, ok := approved[1].(domain.CreateTask)
	req.True(ok)
	req.Equal("second", task.Task)
}

func TestApprovalGate_ClosedInputAbandonsBatch(t *testing.T) {
	req := require.New(t)

	record := analysisWithActions("Will do.", "Review the report")
	gate := NewApprovalGate(strings.NewReader("y\n"), &bytes.Buffer{}, discardLogger())

	approved, err := gate.Review(context.Background(), record)
	req.ErrorIs(err, apperrors.ErrBatchAbandoned)
	req.Nil(approved)
}

func TestApprovalGate_CanceledContextAbandonsBatch(t *testing.T) {
	req := require.New(t)

	record := analysisWithActions("Will do.", "Review the report")
	gate := NewApprovalGate(strings.NewReader("y\ny\n"), &bytes.Buffer{}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approved, err := gate.Review(ctx, record)
	req.ErrorIs(err, apperrors.ErrBatchAbandoned)
	req.Nil(approved)
}

func TestApprovalGate_NoActions(t *testing.T) {
	req := require.New(t)

	out := &bytes.Buffer{}
	gate := NewApprovalGate(strings.NewReader(""), out, discardLogger())
	approved, err := gate.Review(context.Background(), domain.Analysis{})
	req.NoError(err)
	req.Nil(approved)
	req.Zero(out.Len())
}

func TestApprovalGate_ReplyPreviewTruncated(t *testing.T) {
	req := require.New(t)

	record := analysisWithActions(strings.Repeat("a", 150))
	out := &bytes.Buffer{}
	gate := NewApprovalGate(strings.NewReader("n\n"), out, discardLogger())

	_, err := gate.Review(context.Background(), record)
	req.NoError(err)
	req.Contains(out.String(), strings.Repeat("a", 100)+"...")
	req.NotContains(out.String(), strings.Repeat("a", 101))
}
