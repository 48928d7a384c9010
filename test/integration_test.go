package test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agent-lab/agent"
	"agent-lab/analyzers"
	"agent-lab/domain"
	"agent-lab/runtime/workers"
	"agent-lab/services"
)

// End-to-end over the heuristic path: no model, real analyzers, real
// gate and executor, a message flowing from inbox file to audit entry.

func newHeuristicAgent(t *testing.T) *agent.Agent {
	t.Helper()
	set, err := analyzers.NewSet()
	require.NoError(t, err)
	return agent.New(agent.Options{Analyzers: set, Logger: slog.New(slog.DiscardHandler)})
}

func TestHeuristicAnalysis_UrgentWorkRequest(t *testing.T) {
	req := require.New(t)

	brain := newHeuristicAgent(t)
	msg := domain.NewMessage("Sarah",
		"URGENT: please review the attached report by 5pm today and send me your approval.", "test")

	record := brain.Analyze(context.Background(), msg)

	req.False(record.Failed())
	req.Equal(domain.PriorityHigh, record.Priority)
	req.NotEmpty(record.Summary)
	req.NotEmpty(record.SuggestedReply)

	var taskTitles []string
	for _, task := range record.Tasks {
		taskTitles = append(taskTitles, task.Title)
	}
	req.NotEmpty(taskTitles)
	req.Contains(strings.Join(taskTitles, " "), "review")

	// Reply first, then the task actions.
	req.NotEmpty(record.Actions)
	req.Equal(domain.ActionSendReply, record.Actions[0].Type())
}

func TestInboxToAuditFlow(t *testing.T) {
	req := require.New(t)

	inboxDir := t.TempDir()
	processedDir := t.TempDir()
	actionsDir := t.TempDir()
	logsDir := t.TempDir()
	log := slog.New(slog.DiscardHandler)
	out := &bytes.Buffer{}

	// Approve everything the gate asks about.
	gate := services.NewApprovalGate(strings.NewReader(strings.Repeat("\n", 10)), out, log)
	pipeline := services.NewPipeline(
		newHeuristicAgent(t),
		services.NewDisplay(out),
		gate,
		services.NewExecutor(actionsDir, logsDir, out, log),
		nil,
		log,
	)

	inbox := workers.NewInboxWorker(inboxDir, processedDir, time.Second, pipeline.Process, log)

	content := "From: Finance Director\n\nPlease review the budget spreadsheet and send your feedback by tomorrow."
	req.NoError(os.WriteFile(filepath.Join(inboxDir, "budget.txt"), []byte(content), 0o644))

	sup := workers.NewSupervisor(log)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sup.Add(inbox).Run(ctx)
		close(done)
	}()

	// The first scan runs immediately; give it a moment to finish.
	req.Eventually(func() bool {
		entries, err := os.ReadDir(processedDir)
		return err == nil && len(entries) == 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done

	// The message left the inbox.
	remaining, err := os.ReadDir(inboxDir)
	req.NoError(err)
	req.Empty(remaining)

	// Approved actions became files.
	actionFiles, err := os.ReadDir(actionsDir)
	req.NoError(err)
	req.NotEmpty(actionFiles)

	// And the batch was audited.
	logFiles, err := os.ReadDir(logsDir)
	req.NoError(err)
	req.Len(logFiles, 1)
	req.True(strings.HasPrefix(logFiles[0].Name(), "execution_"))

	// The rendered output carried the extracted sender through.
	req.Contains(out.String(), "Finance Director")
}
