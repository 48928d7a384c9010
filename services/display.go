// Package services wires the pipeline around the agent: terminal
// rendering, the human approval gate, the action executor with its
// audit log, and the orchestrating Pipeline.
package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"agent-lab/domain"
)

const rulerWidth = 60

// Display renders verdicts and pipeline progress for a terminal.
type Display struct {
	out io.Writer
}

func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

func (d *Display) Banner() {
	ruler := strings.Repeat("=", rulerWidth)
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, ruler)
	fmt.Fprintln(d.out, color.Bold.Sprint("  AGENT LAB - Personal AI Employee"))
	fmt.Fprintln(d.out, "  Observation | Agent Analysis + Approval")
	fmt.Fprintln(d.out, ruler)
	fmt.Fprintln(d.out)
}

// Analysis prints the merged verdict. Error payloads short-circuit:
// only the diagnostic is shown before the heuristic fallback fields.
func (d *Display) Analysis(record domain.Analysis) {
	ruler := strings.Repeat("=", rulerWidth)
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, ruler)
	fmt.Fprintln(d.out, "  AGENT ANALYSIS")
	fmt.Fprintln(d.out, ruler)
	fmt.Fprintln(d.out)

	if record.Failed() {
		fmt.Fprintln(d.out, color.Red.Sprintf("ERROR: %s", record.Error))
		fmt.Fprintln(d.out, "Falling back to direct analysis:")
		fmt.Fprintln(d.out)
	}

	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"From", "Priority", "Category"})
	table.Append([]string{
		record.Sender,
		coloredPriority(record.Priority),
		strings.ToUpper(string(record.Category)),
	})
	table.Render()

	if record.Summary != "" {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, color.Bold.Sprint("[SUMMARY]"))
		fmt.Fprintln(d.out, record.Summary)
	}

	if record.SuggestedReply != "" {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, color.Bold.Sprint("[SUGGESTED REPLY]"))
		fmt.Fprintln(d.out, record.SuggestedReply)
	}

	if len(record.Tasks) > 0 {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, color.Bold.Sprint("[EXTRACTED TASKS]"))
		for i, task := range record.Tasks {
			fmt.Fprintf(d.out, "  %d. %s\n", i+1, task.Title)
		}
	}

	if record.Narrative != "" {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, color.Bold.Sprint("[AGENT NOTES]"))
		fmt.Fprintln(d.out, record.Narrative)
	}

	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, ruler)
}

func (d *Display) Info(format string, args ...any) {
	fmt.Fprintf(d.out, format+"\n", args...)
}

func coloredPriority(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return color.Red.Sprint(string(p))
	case domain.PriorityLow:
		return color.Gray.Sprint(string(p))
	default:
		return color.Yellow.Sprint(string(p))
	}
}
