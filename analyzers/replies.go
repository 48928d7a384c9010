package analyzers

import "strings"

const suggestionCap = 3

// Message types, checked in order. Requests are checked before problems
// so "can you help fix" reads as a request, and greetings beat
// everything because salutations open most messages.
const (
	MessageTypeGreeting     = "greeting"
	MessageTypeRequest      = "request"
	MessageTypeProblem      = "problem"
	MessageTypeUrgent       = "urgent"
	MessageTypeQuestion     = "question"
	MessageTypeMeeting      = "meeting"
	MessageTypeAppreciation = "appreciation"
	MessageTypeCompliment   = "compliment"
	MessageTypeGeneral      = "general"
)

var suggestionBank = map[string][]string{
	MessageTypeGreeting: {
		"Hello! How can I help you today?",
		"Hi! Thanks for reaching out. What can I assist you with?",
		"Hey! Good to hear from you. What do you need?",
	},
	MessageTypeProblem: {
		"I understand you're experiencing an issue. Let me look into this and help you resolve it.",
		"Thanks for reporting this problem. I'll investigate and get back to you with a solution.",
		"I see there's an issue. Can you provide more details so I can help fix it?",
	},
	MessageTypeRequest: {
		"I'd be happy to help with that. Let me take care of it for you.",
		"Sure, I can assist with this request. I'll get started right away.",
		"Absolutely, I'll handle this for you. Give me a moment to process it.",
	},
	MessageTypeUrgent: {
		"I acknowledge receipt of your urgent message. I will prioritize addressing this and get back to you shortly.",
		"Understood. I'm looking into this matter right away and will provide an update within the next hour.",
		"I've received your urgent request and am treating it with the highest priority.",
	},
	MessageTypeQuestion: {
		"Thank you for your question. Let me look into this and get back to you with a detailed response.",
		"I understand you have a question. I'll review the details and provide an answer soon.",
		"Thanks for reaching out with this question. I need to gather some information before responding.",
	},
	MessageTypeMeeting: {
		"I've noted the meeting request. I'll check my calendar and confirm my availability.",
		"Thank you for the meeting invitation. I'll review my schedule and respond shortly.",
		"I acknowledge the meeting request. I'll confirm my attendance once I've checked my availability.",
	},
	MessageTypeAppreciation: {
		"Thank you for your kind words. I appreciate the recognition.",
		"I'm grateful for your appreciation. Thank you for taking the time to share this feedback.",
		"Your appreciation means a lot. Thank you for the positive feedback.",
	},
	MessageTypeCompliment: {
		"Thank you for the compliment. I appreciate the recognition.",
		"I'm honored by your kind words. Thank you for taking the time to acknowledge this.",
		"Your feedback is much appreciated. Thank you for the encouraging words.",
	},
	MessageTypeGeneral: {
		"Thank you for your message. I have received it and will respond shortly.",
		"I acknowledge receipt of your message. I'm reviewing the details and will get back to you soon.",
		"Thank you for sharing this information. I'll process it and provide a response.",
	},
}

// ReplyResult is the reply suggester verdict.
type ReplyResult struct {
	MessageType string   `json:"message_type"`
	Suggestions []string `json:"suggestions"`
	Sender      string   `json:"sender,omitempty"`
}

// SuggestReply classifies the message and proposes canned replies for
// that type, most suitable first.
func (s *Set) SuggestReply(content, sender string) ReplyResult {
	messageType := classifyMessage(content)

	suggestions := suggestionBank[messageType]
	return ReplyResult{
		MessageType: messageType,
		Suggestions: suggestions[:min(suggestionCap, len(suggestions))],
		Sender:      sender,
	}
}

func classifyMessage(content string) string {
	lowered := strings.ToLower(content)
	switch {
	case containsAny(lowered, "hi", "hello", "hey", "good morning", "good afternoon", "good evening"):
		return MessageTypeGreeting
	case containsAny(lowered, "can you", "could you", "please", "need you to", "would you", "request"):
		return MessageTypeRequest
	case containsAny(lowered, "issue", "problem", "error", "bug", "broken", "not working", "fix"):
		return MessageTypeProblem
	case containsAny(lowered, "urgent", "asap", "immediately", "now"):
		return MessageTypeUrgent
	case containsAny(lowered, "question", "ask", "wonder", "?"):
		return MessageTypeQuestion
	case containsAny(lowered, "meeting", "appointment", "schedule", "when", "time"):
		return MessageTypeMeeting
	case containsAny(lowered, "thank", "thanks", "appreciate"):
		return MessageTypeAppreciation
	case containsAny(lowered, "congrat", "well done", "great job"):
		return MessageTypeCompliment
	default:
		return MessageTypeGeneral
	}
}
