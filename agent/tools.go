// Package agent runs the LLM reasoning loop: the model plans which
// analyzers to invoke, the registry executes them, and the assembler
// folds the tool results into one verdict. When no model is available
// the same analyzers run directly.
package agent

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"agent-lab/analyzers"
	apperrors "agent-lab/errors"
)

const (
	ToolSummarizer       = "summarizer"
	ToolReplySuggester   = "reply_suggester"
	ToolTaskExtractor    = "task_extractor"
	ToolPriorityDetector = "priority_detector"
	ToolCategorizer      = "categorizer"
)

// Arguments are the decoded JSON arguments of one tool call.
type Arguments map[string]any

// String returns the named argument when it is a string, else "".
func (a Arguments) String(key string) string {
	value, _ := a[key].(string)
	return value
}

// ErrorResult is handed back to the model in place of a tool verdict
// when the call could not be executed. The loop itself never fails on
// a bad tool call.
type ErrorResult struct {
	Error string `json:"error"`
}

// Descriptor is one registered tool: its OpenAI-style definition plus
// the handler executing it.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]any
	handler     func(Arguments) any
}

// Registry holds the tool table. The order is fixed and the table is
// immutable after construction.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]Descriptor
}

// NewRegistry registers the five analyzers as tools.
func NewRegistry(set *analyzers.Set) *Registry {
	return newRegistry(
		Descriptor{
			Name:        ToolSummarizer,
			Description: "Summarize message content into key points",
			Parameters:  contentOnlyParameters("The message text to summarize"),
			handler: func(args Arguments) any {
				return set.Summarize(args.String("content"))
			},
		},
		Descriptor{
			Name:        ToolReplySuggester,
			Description: "Suggest appropriate replies to the message",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content": map[string]any{
						"type":        "string",
						"description": "The message text",
					},
					"sender": map[string]any{
						"type":        "string",
						"description": "Optional sender name",
					},
				},
				"required": []string{"content"},
			},
			handler: func(args Arguments) any {
				return set.SuggestReply(args.String("content"), args.String("sender"))
			},
		},
		Descriptor{
			Name:        ToolTaskExtractor,
			Description: "Extract actionable tasks from the message",
			Parameters:  contentOnlyParameters("The message text"),
			handler: func(args Arguments) any {
				return set.ExtractTasks(args.String("content"))
			},
		},
		Descriptor{
			Name:        ToolPriorityDetector,
			Description: "Detect the priority level (HIGH/MEDIUM/LOW) of the message",
			Parameters:  contentOnlyParameters("The message text"),
			handler: func(args Arguments) any {
				return set.DetectPriority(args.String("content"))
			},
		},
		Descriptor{
			Name:        ToolCategorizer,
			Description: "Categorize the message type (work/personal/study/finance/other)",
			Parameters:  contentOnlyParameters("The message text"),
			handler: func(args Arguments) any {
				return set.Categorize(args.String("content"))
			},
		},
	)
}

func newRegistry(descriptors ...Descriptor) *Registry {
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}
	return &Registry{descriptors: descriptors, byName: byName}
}

// Definitions returns the tool table in wire form for the model.
func (r *Registry) Definitions() []llms.Tool {
	tools := make([]llms.Tool, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		})
	}
	return tools
}

// Invoke executes the named tool. Unknown names and handler panics are
// contained: the result is an ErrorResult, never a loop failure.
func (r *Registry) Invoke(name string, args Arguments) (result any) {
	descriptor, ok := r.byName[name]
	if !ok {
		return ErrorResult{Error: fmt.Sprintf("%s: %s", apperrors.ErrUnknownTool, name)}
	}

	defer func() {
		if cause := recover(); cause != nil {
			result = ErrorResult{Error: fmt.Sprintf("%s: %s: %v", apperrors.ErrToolExecutionFailed, name, cause)}
		}
	}()
	return descriptor.handler(args)
}

func contentOnlyParameters(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"content"},
	}
}
