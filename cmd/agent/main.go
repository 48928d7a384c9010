package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"agent-lab/domain"
	apperrors "agent-lab/errors"
	"agent-lab/repositories"
	"agent-lab/runtime/workers"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const demoMessage = `Hi,

I need your help with the quarterly budget report. Can you please review the attached spreadsheet and send me your feedback by tomorrow 2 PM? This is urgent as we have a board meeting on Friday.

Also, please schedule a follow-up meeting with the finance team to discuss the Q3 projections.

Thanks,
Sarah (Finance Director)
`

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call execute() and handle the OS exit code.
	code, err := execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

func execute() (int, error) {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, apperrors.ErrMissingAPIKey) {
			printAPIKeyHelp(os.Stderr)
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

func printAPIKeyHelp(out io.Writer) {
	fmt.Fprintln(out, "\nPlease follow these steps:")
	fmt.Fprintln(out, "1. Copy .env.example to .env")
	fmt.Fprintln(out, "2. Add your OpenRouter API key to .env")
	fmt.Fprintln(out, "3. Get a free API key at: https://openrouter.ai/keys")
	fmt.Fprintln(out, "\nOr set AGENT_ENABLED=false to run the heuristic analyzers without a model.")
}

func newRootCmd() *cobra.Command {
	var watch, whatsapp, demo bool

	cmd := &cobra.Command{
		Use:           "agent",
		Short:         "Personal AI employee: analyzes incoming messages and proposes actions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			switch {
			case demo:
				return runDemo(ctx, a)
			case whatsapp:
				return runWatch(ctx, a, true)
			case watch:
				return runWatch(ctx, a, false)
			default:
				return runInteractive(ctx, a)
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "watch the vault inbox for new message files")
	cmd.Flags().BoolVar(&whatsapp, "whatsapp", false, "also capture WhatsApp Web messages into the inbox")
	cmd.Flags().BoolVar(&demo, "demo", false, "analyze a bundled sample message and exit")
	cmd.MarkFlagsMutuallyExclusive("watch", "whatsapp", "demo")

	cmd.AddCommand(newSearchCmd(), newHistoryCmd())
	return cmd
}

func runDemo(ctx context.Context, a *app) error {
	a.display.Banner()
	a.display.Info("[DEMO MODE] Running with sample message")

	record := a.agent.Analyze(ctx, domain.NewMessage("Sarah", demoMessage, "demo"))
	a.display.Analysis(record)

	if len(record.Actions) > 0 {
		a.display.Info("")
		a.display.Info("[DEMO] In real mode, you would approve/reject actions here")
		a.display.Info("[DEMO] Found %d suggested actions", len(record.Actions))
	}
	return nil
}

func runWatch(ctx context.Context, a *app, withWhatsApp bool) error {
	a.display.Banner()

	sup := workers.NewSupervisor(a.log)
	sup.Add(
		workers.NewInboxWorker(a.vault.Inbox, a.vault.Processed, a.config.PollInterval, a.pipeline.Process, a.log),
		workers.NewHeartbeatWorker(a.log, a.config.HeartbeatInterval),
	)
	if withWhatsApp {
		a.display.Info("WhatsApp Web will open in a browser. Scan the QR code to log in.")
		sup.Add(workers.NewWhatsAppWorker(
			a.vault.Inbox,
			a.config.WhatsAppProfileDir,
			a.config.WhatsAppHeadless,
			a.config.WhatsAppPollInterval,
			a.log,
		))
	}

	a.display.Info("Watching %s for new messages (Ctrl+C to stop)", a.vault.Inbox)
	sup.Run(ctx)
	return nil
}

func runInteractive(ctx context.Context, a *app) error {
	a.display.Banner()
	a.display.Info("Interactive Mode - Enter messages to analyze")
	a.display.Info("Commands: 'watch' to start folder watcher, 'whatsapp' for WhatsApp, 'quick <message>' for a fast read, 'quit' to exit")

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Print("\nEnter message (or command): ")

		line, err := a.stdin.ReadString('\n')
		if err != nil && line == "" {
			// Input closed, leave quietly.
			fmt.Println()
			return nil
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch {
		case strings.EqualFold(input, "quit"):
			return nil
		case strings.EqualFold(input, "watch"):
			return runWatch(ctx, a, false)
		case strings.EqualFold(input, "whatsapp"):
			return runWatch(ctx, a, true)
		case strings.HasPrefix(strings.ToLower(input), "quick "):
			text, err := a.agent.QuickAnalyze(ctx, strings.TrimSpace(input[len("quick "):]))
			if err != nil {
				a.display.Info("Quick analysis failed: %v", err)
				continue
			}
			a.display.Info("%s", text)
		default:
			msg := domain.NewMessage(domain.UnknownSender, input, "interactive")
			if err := a.pipeline.Process(ctx, msg); err != nil {
				if errors.Is(err, apperrors.ErrBatchAbandoned) {
					return nil
				}
				a.display.Info("ERROR: %v", err)
			}
		}
	}
}

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over archived analyses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			hits, err := a.archive.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			renderStored(os.Stdout, hits)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recently archived analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.archive.Recent(limit)
			if err != nil {
				return err
			}
			renderStored(os.Stdout, entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of entries")
	return cmd
}

func renderStored(out io.Writer, entries []repositories.StoredAnalysis) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries found.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"When", "Sender", "Priority", "Category", "Summary"})
	for _, entry := range entries {
		summary := entry.Record.Summary
		if runes := []rune(summary); len(runes) > 60 {
			summary = string(runes[:60]) + "..."
		}
		table.Append([]string{
			entry.At.Local().Format("2006-01-02 15:04"),
			entry.Record.Sender,
			string(entry.Record.Priority),
			string(entry.Record.Category),
			summary,
		})
	}
	table.Render()
}
