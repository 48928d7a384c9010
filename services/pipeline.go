package services

import (
	"context"
	"fmt"
	"log/slog"

	"agent-lab/agent"
	"agent-lab/domain"
	apperrors "agent-lab/errors"
)

// ArchiveStore persists verdicts for later lookup. Nil disables
// archiving without touching the rest of the pipeline.
type ArchiveStore interface {
	Store(record domain.Analysis) error
}

// Pipeline runs one message through the whole flow: analysis, display,
// archive, approval, execution.
type Pipeline struct {
	agent    *agent.Agent
	display  *Display
	gate     *ApprovalGate
	executor *Executor
	archive  ArchiveStore
	log      *slog.Logger
}

func NewPipeline(a *agent.Agent, display *Display, gate *ApprovalGate, executor *Executor, archive ArchiveStore, log *slog.Logger) *Pipeline {
	return &Pipeline{
		agent:    a,
		display:  display,
		gate:     gate,
		executor: executor,
		archive:  archive,
		log:      log,
	}
}

// Process analyzes one message and, when the verdict proposes actions,
// walks them through approval and execution. The returned error is
// terminal for the current batch only; the caller decides whether to
// keep consuming messages.
func (p *Pipeline) Process(ctx context.Context, msg domain.Message) error {
	record := p.agent.Analyze(ctx, msg)
	p.display.Analysis(record)

	if p.archive != nil {
		if err := p.archive.Store(record); err != nil {
			// Archiving is best effort, the verdict is already on screen.
			p.log.Warn("archive write failed", slog.Any("error", err))
		}
	}

	if len(record.Actions) == 0 {
		return nil
	}

	approved, err := p.gate.Review(ctx, record)
	if err != nil {
		return err
	}
	if len(approved) == 0 {
		return nil
	}

	// An interrupt between approval and execution still abandons the
	// batch: nothing runs after the operator asked to stop.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBatchAbandoned, err)
	}

	_, err = p.executor.Execute(record, approved)
	return err
}
