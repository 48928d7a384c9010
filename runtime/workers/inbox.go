package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"agent-lab/domain"
)

// ProcessFunc handles one ingested message end to end.
type ProcessFunc func(ctx context.Context, msg domain.Message) error

// InboxWorker polls the inbox directory for message files and feeds
// them to the pipeline. Files are moved to the processed directory
// only after a successful run; a failed file stays in the inbox but is
// not retried within this process.
type InboxWorker struct {
	inboxDir     string
	processedDir string
	interval     time.Duration
	process      ProcessFunc
	log          *slog.Logger
	seen         map[string]struct{}
}

func NewInboxWorker(inboxDir, processedDir string, interval time.Duration, process ProcessFunc, log *slog.Logger) *InboxWorker {
	return &InboxWorker{
		inboxDir:     inboxDir,
		processedDir: processedDir,
		interval:     interval,
		process:      process,
		log:          log,
		seen:         make(map[string]struct{}),
	}
}

func (w *InboxWorker) Run(ctx context.Context) error {
	w.log.Info("Watching inbox for new messages",
		slog.String("dir", w.inboxDir), slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// First scan happens right away, not one interval in.
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *InboxWorker) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		w.log.Error("inbox scan failed", slog.Any("error", err))
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() {
			continue
		}
		if _, done := w.seen[entry.Name()]; done {
			continue
		}
		if !w.eligible(entry.Name()) {
			continue
		}

		w.log.Info("New message detected", slog.String("file", entry.Name()))
		w.handleFile(ctx, entry.Name())
	}
}

// eligible accepts .txt and .md files by extension; anything else is
// sniffed and accepted only when it holds plain text.
func (w *InboxWorker) eligible(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return true
	}

	kind, err := mimetype.DetectFile(filepath.Join(w.inboxDir, name))
	if err != nil {
		return false
	}
	return kind.Is("text/plain")
}

func (w *InboxWorker) handleFile(ctx context.Context, name string) {
	// Marked seen up front: a failing file must not be retried in a
	// tight loop on every scan.
	w.seen[name] = struct{}{}

	path := filepath.Join(w.inboxDir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		w.log.Error("failed to read message file", slog.String("file", name), slog.Any("error", err))
		return
	}

	content := string(raw)
	msg := domain.NewMessage(domain.ExtractSender(name, content), content, "inbox")

	if err := w.process(ctx, msg); err != nil {
		w.log.Error("failed to process message, leaving file in inbox",
			slog.String("file", name), slog.Any("error", err))
		return
	}

	destination := filepath.Join(w.processedDir, name)
	if err := os.Rename(path, destination); err != nil {
		w.log.Error("failed to move processed message",
			slog.String("file", name), slog.Any("error", err))
		return
	}
	w.log.Info(fmt.Sprintf("Message moved to processed: %s", name))
}
