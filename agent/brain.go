package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"

	"agent-lab/analyzers"
	"agent-lab/domain"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultTimeout     = 60 * time.Second

	// Quick mode trades depth for latency.
	quickMaxTokens = 500
)

// Options configures an Agent. Model may be nil, in which case every
// analysis takes the direct heuristic path.
type Options struct {
	Model       llms.Model
	Analyzers   *analyzers.Set
	Logger      *slog.Logger
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Agent drives the two-round reasoning loop: one planning round where
// the model may request tools, one synthesis round over the gathered
// results. Failures never escape Analyze; the heuristic path is the
// fallback for every model-side error.
type Agent struct {
	llm         llms.Model
	registry    *Registry
	set         *analyzers.Set
	log         *slog.Logger
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

func New(opts Options) *Agent {
	a := &Agent{
		llm:         opts.Model,
		registry:    NewRegistry(opts.Analyzers),
		set:         opts.Analyzers,
		log:         opts.Logger,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		timeout:     opts.Timeout,
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.temperature == 0 {
		a.temperature = defaultTemperature
	}
	if a.maxTokens == 0 {
		a.maxTokens = defaultMaxTokens
	}
	if a.timeout == 0 {
		a.timeout = defaultTimeout
	}
	return a
}

// Analyze produces the merged verdict for one message. With no model
// configured it runs the analyzers directly; with a model it runs the
// reasoning loop and, on any failure, falls back to the analyzers
// while recording the diagnostic on the verdict.
func (a *Agent) Analyze(ctx context.Context, msg domain.Message) domain.Analysis {
	if a.llm == nil {
		return a.AnalyzeWithSkills(msg)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	record, err := a.analyzeWithTools(ctx, msg)
	if err != nil {
		a.log.Warn("agent loop failed, falling back to direct analyzers",
			slog.String("sender", msg.Sender), slog.Any("error", err))
		record = a.AnalyzeWithSkills(msg)
		record.Error = err.Error()
	}
	return record
}

func (a *Agent) analyzeWithTools(ctx context.Context, msg domain.Message) (domain.Analysis, error) {
	history := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, analysisPrompt(msg.Content)),
	}

	resp, err := a.llm.GenerateContent(ctx, history,
		llms.WithTools(a.registry.Definitions()),
		llms.WithTemperature(a.temperature),
		llms.WithMaxTokens(a.maxTokens),
	)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("planning round: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Analysis{}, fmt.Errorf("planning round: model returned no choices")
	}
	choice := resp.Choices[0]

	// The model may answer directly without requesting any tool.
	if len(choice.ToolCalls) == 0 {
		a.log.Debug("no tools requested", slog.String("sender", msg.Sender))
		return Assemble(msg, choice.Content, ToolResults{}), nil
	}

	var results ToolResults
	for _, call := range choice.ToolCalls {
		// Some providers emit malformed tool calls; one bad call must
		// not take down the whole analysis.
		if call.FunctionCall == nil {
			a.log.Warn("tool call without a function payload, skipping",
				slog.String("id", call.ID))
			continue
		}
		name := call.FunctionCall.Name

		var result any
		var args Arguments
		if err := json.Unmarshal([]byte(call.FunctionCall.Arguments), &args); err != nil {
			result = ErrorResult{Error: fmt.Sprintf("invalid arguments for %s: %v", name, err)}
		} else {
			result = a.registry.Invoke(name, args)
		}
		results.record(result)
		a.log.Debug("tool invoked", slog.String("tool", name))

		payload, err := json.Marshal(result)
		if err != nil {
			payload = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
		}
		history = append(history,
			llms.MessageContent{
				Role:  llms.ChatMessageTypeAI,
				Parts: []llms.ContentPart{call},
			},
			llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: call.ID,
					Name:       name,
					Content:    string(payload),
				}},
			},
		)
	}

	// Synthesis round, without tools.
	resp, err = a.llm.GenerateContent(ctx, history,
		llms.WithTemperature(a.temperature),
		llms.WithMaxTokens(a.maxTokens),
	)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("synthesis round: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Analysis{}, fmt.Errorf("synthesis round: model returned no choices")
	}

	return Assemble(msg, resp.Choices[0].Content, results), nil
}

// AnalyzeWithSkills runs all five analyzers directly, no model involved.
// This is both the no-model mode and the fallback path.
func (a *Agent) AnalyzeWithSkills(msg domain.Message) domain.Analysis {
	results := ToolResults{
		Summary:  lo.ToPtr(a.set.Summarize(msg.Content)),
		Priority: lo.ToPtr(a.set.DetectPriority(msg.Content)),
		Category: lo.ToPtr(a.set.Categorize(msg.Content)),
		Replies:  lo.ToPtr(a.set.SuggestReply(msg.Content, msg.Sender)),
		Tasks:    lo.ToPtr(a.set.ExtractTasks(msg.Content)),
	}
	return Assemble(msg, "", results)
}

// QuickAnalyze asks the model for a short free-text read of the
// message, with no tool calling.
func (a *Agent) QuickAnalyze(ctx context.Context, message string) (string, error) {
	if a.llm == nil {
		return "", fmt.Errorf("quick analysis requires a configured model")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, quickPrompt(message)),
		},
		llms.WithTemperature(a.temperature),
		llms.WithMaxTokens(quickMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("quick analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("quick analysis: model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
