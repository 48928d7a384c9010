// Package domain contains core concepts of the message pipeline.
// This file defines incoming Messages and sender derivation rules.
// Messages are immutable once read from their source.
package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownSender is used whenever no sender can be derived for a message.
const UnknownSender = "Unknown"

// senderScanLines bounds how deep into a message body the "From:" header is searched.
const senderScanLines = 5

// Message represents an immutable incoming message.
type Message struct {
	ID         uuid.UUID
	Sender     string // may be empty; the assembler substitutes UnknownSender
	Content    string
	Source     string // originating file path, empty for interactive input
	ReceivedAt time.Time
}

func NewMessage(sender, content, source string) Message {
	return Message{
		ID:         uuid.New(),
		Sender:     sender,
		Content:    content,
		Source:     source,
		ReceivedAt: time.Now().UTC(),
	}
}

// ExtractSender derives a sender from the filename convention
// "message_from_john_doe.txt" or from a "From:" line within the first
// lines of the content. Falls back to UnknownSender.
func ExtractSender(filename, content string) string {
	if idx := strings.Index(filename, "_from_"); idx >= 0 {
		sender := filename[idx+len("_from_"):]
		sender = strings.TrimSuffix(sender, filepath.Ext(sender))
		sender = strings.ReplaceAll(sender, "_", " ")
		if sender != "" {
			return cases.Title(language.English).String(sender)
		}
	}

	for i, line := range strings.Split(content, "\n") {
		if i == senderScanLines {
			break
		}
		if len(line) >= 5 && strings.EqualFold(line[:5], "from:") {
			if sender := strings.TrimSpace(line[5:]); sender != "" {
				return sender
			}
		}
	}

	return UnknownSender
}
