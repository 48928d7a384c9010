package workers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agent-lab/domain"
)

func TestWhatsAppWorker_SaveWritesInboxFile(t *testing.T) {
	req := require.New(t)

	inboxDir := t.TempDir()
	worker := NewWhatsAppWorker(inboxDir, t.TempDir(), true, time.Second, discardLogger())
	worker.now = func() time.Time {
		return time.Date(2026, 8, 27, 9, 15, 0, 0, time.UTC)
	}

	req.NoError(worker.save(unreadChat{Sender: "Sarah / Finance", Text: "budget is due"}))

	path := filepath.Join(inboxDir, "whatsapp_20260827_091500.txt")
	content, err := os.ReadFile(path)
	req.NoError(err)
	req.Contains(string(content), "From: Sarah / Finance\n")
	req.Contains(string(content), "Source: WhatsApp\n")
	req.Contains(string(content), "budget is due")

	// The sender header keeps slash-ridden chat titles intact, and the
	// inbox extraction picks them up verbatim.
	req.Equal("Sarah / Finance", domain.ExtractSender(filepath.Base(path), string(content)))
}

func TestWhatsAppWorker_SaveAvoidsCollisions(t *testing.T) {
	req := require.New(t)

	inboxDir := t.TempDir()
	worker := NewWhatsAppWorker(inboxDir, t.TempDir(), true, time.Second, discardLogger())
	worker.now = func() time.Time {
		return time.Date(2026, 8, 27, 9, 15, 0, 0, time.UTC)
	}

	req.NoError(worker.save(unreadChat{Sender: "A", Text: "first"}))
	req.NoError(worker.save(unreadChat{Sender: "B", Text: "second"}))

	req.FileExists(filepath.Join(inboxDir, "whatsapp_20260827_091500.txt"))
	req.FileExists(filepath.Join(inboxDir, "whatsapp_20260827_091500_2.txt"))
}

func TestMessageFingerprint(t *testing.T) {
	req := require.New(t)

	req.Equal(messageFingerprint("a", "b"), messageFingerprint("a", "b"))
	req.NotEqual(messageFingerprint("a", "b"), messageFingerprint("a", "c"))
	// The separator keeps sender/text boundaries unambiguous.
	req.NotEqual(messageFingerprint("ab", ""), messageFingerprint("a", "b"))
}
