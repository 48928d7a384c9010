package analyzers

import (
	"regexp"
	"strings"
)

const (
	taskTitleCap          = 100
	minimumSentenceLength = 10
)

var taskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(please|need to|must|have to|should|could)\s+(do|complete|finish|send|review|check|prepare|submit|attend)\b`),
	regexp.MustCompile(`(?i)\b(to do|todo|to-do|action item|next step|task|assignment)\b`),
	regexp.MustCompile(`(?i)\b(by\s+\w+\s+\d{1,2}(?:st|nd|rd|th)?|before|after|when|tomorrow|today|later|ASAP|urgent)\b`),
	regexp.MustCompile(`(?i)(call|email|contact|reach out|respond|reply|follow up|remind|inform|notify)`),
	regexp.MustCompile(`(?i)(buy|purchase|order|get|obtain|arrange|schedule|book|setup|configure|install|update|change)`),
}

var taskIndicators = []string{
	"action", "todo", "task", "complete", "finish", "do", "perform", "execute",
	"attend", "review", "read", "watch", "learn", "study", "practice",
	"buy", "get", "purchase", "order", "request", "apply", "register",
	"make", "create", "draft", "write", "edit", "proofread", "submit",
	"organize", "arrange", "prepare", "plan", "think about", "decide",
}

var (
	deadlinePattern         = regexp.MustCompile(`(?i)(by|before|until|due|tomorrow|today|tonight|week|month|ASAP)`)
	sentenceDeadlinePattern = regexp.MustCompile(`(?i)(by|before|tomorrow|today|due)`)
	sentenceSplitPattern    = regexp.MustCompile(`[.!?]+`)
	bulletPrefixPattern     = regexp.MustCompile(`^[-*•]\s*`)
	numberPrefixPattern     = regexp.MustCompile(`^\d+\.\s*`)
)

// ExtractedTask is one candidate action item pulled from a message.
type ExtractedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Index       int    `json:"index"`
}

// TaskResult is the task extractor verdict.
type TaskResult struct {
	Tasks []ExtractedTask `json:"tasks"`
	Count int             `json:"count"`
}

// ExtractTasks scans lines and sentences for action items: imperative
// patterns, task-indicating words, and deadline language. Header lines
// are skipped; list markers are stripped from the extracted text.
func (s *Set) ExtractTasks(content string) TaskResult {
	var candidates []string
	seen := make(map[string]struct{})

	add := func(candidate string) {
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate)
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if matchesTaskPattern(line) || hasTaskIndicator(line) || deadlinePattern.MatchString(line) {
			add(numberPrefixPattern.ReplaceAllString(bulletPrefixPattern.ReplaceAllString(line, ""), ""))
		}
	}

	// Second pass over sentences catches tasks spanning folded lines.
	for _, sentence := range sentenceSplitPattern.Split(content, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minimumSentenceLength {
			continue
		}
		if hasTaskIndicator(sentence) && sentenceDeadlinePattern.MatchString(sentence) {
			add(bulletPrefixPattern.ReplaceAllString(sentence, ""))
		}
	}

	tasks := make([]ExtractedTask, 0, len(candidates))
	for i, candidate := range candidates {
		tasks = append(tasks, ExtractedTask{
			Title:       truncate(candidate, taskTitleCap),
			Description: candidate,
			Priority:    taskPriority(candidate),
			Index:       i,
		})
	}

	return TaskResult{Tasks: tasks, Count: len(tasks)}
}

func matchesTaskPattern(line string) bool {
	for _, pattern := range taskPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func hasTaskIndicator(line string) bool {
	return containsAny(strings.ToLower(line), taskIndicators...)
}

func taskPriority(task string) string {
	lowered := strings.ToLower(task)
	switch {
	case containsAny(lowered, "urgent", "asap", "immediately", "critical"):
		return "urgent"
	case containsAny(lowered, "important", "priority", "must"):
		return "high"
	default:
		return "normal"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
