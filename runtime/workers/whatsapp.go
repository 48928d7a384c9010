package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	whatsappURL       = "https://web.whatsapp.com/"
	loginTimeout      = 2 * time.Minute
	chatListSelector  = `div[role="grid"]`
	whatsappViewportW = 1280
	whatsappViewportH = 800
)

// collectUnreadJS walks the chat list and returns, per chat carrying an
// unread badge, the chat title and the last message preview.
const collectUnreadJS = `
(() => {
  const out = [];
  const rows = document.querySelectorAll('div[role="listitem"], div[role="row"]');
  for (const row of rows) {
    const unread = row.querySelector('[aria-label*="unread"], [data-icon="chat-unread"], [class*="unread"]');
    if (!unread) continue;
    const title = row.querySelector('span[title]');
    if (!title || !title.getAttribute('title')) continue;
    const preview = row.querySelector('div[role="gridcell"] span[dir="ltr"], span[dir="ltr"]');
    out.push({
      sender: title.getAttribute('title'),
      text: preview ? preview.textContent : '',
    });
  }
  return out;
})()
`

type unreadChat struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// WhatsAppWorker drives WhatsApp Web through a headful browser and
// drops every new unread message into the inbox directory, where the
// inbox worker picks it up like any other message. Login is manual:
// the user scans the QR code once, the browser profile keeps the
// session across runs.
type WhatsAppWorker struct {
	inboxDir   string
	profileDir string
	headless   bool
	interval   time.Duration
	log        *slog.Logger
	seen       map[string]struct{}
	now        func() time.Time
}

func NewWhatsAppWorker(inboxDir, profileDir string, headless bool, interval time.Duration, log *slog.Logger) *WhatsAppWorker {
	return &WhatsAppWorker{
		inboxDir:   inboxDir,
		profileDir: profileDir,
		headless:   headless,
		interval:   interval,
		log:        log,
		seen:       make(map[string]struct{}),
		now:        time.Now,
	}
}

func (w *WhatsAppWorker) Run(ctx context.Context) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(w.profileDir),
		chromedp.Flag("headless", w.headless),
		chromedp.WindowSize(whatsappViewportW, whatsappViewportH),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	w.log.Info("Opening WhatsApp Web, scan the QR code if asked")
	if err := w.waitForLogin(browserCtx); err != nil {
		return fmt.Errorf("whatsapp login: %w", err)
	}
	w.log.Info("WhatsApp UI loaded, monitoring for new messages")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.collect(browserCtx); err != nil {
				w.log.Warn("WhatsApp scan failed", slog.Any("error", err))
			}
		}
	}
}

func (w *WhatsAppWorker) waitForLogin(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	return chromedp.Run(ctx,
		chromedp.Navigate(whatsappURL),
		chromedp.WaitVisible(chatListSelector, chromedp.ByQuery),
	)
}

func (w *WhatsAppWorker) collect(ctx context.Context) error {
	var chats []unreadChat
	if err := chromedp.Run(ctx, chromedp.Evaluate(collectUnreadJS, &chats)); err != nil {
		return err
	}

	for _, chat := range chats {
		if chat.Text == "" {
			continue
		}
		fingerprint := messageFingerprint(chat.Sender, chat.Text)
		if _, dup := w.seen[fingerprint]; dup {
			continue
		}
		w.seen[fingerprint] = struct{}{}

		if err := w.save(chat); err != nil {
			w.log.Error("failed to save WhatsApp message",
				slog.String("sender", chat.Sender), slog.Any("error", err))
			continue
		}
		w.log.Info("WhatsApp message saved", slog.String("sender", chat.Sender))
	}
	return nil
}

// save writes the message as an inbox file. The sender travels in a
// "From:" header instead of the filename, so arbitrary chat titles
// can't mangle the name.
func (w *WhatsAppWorker) save(chat unreadChat) error {
	now := w.now()
	name := fmt.Sprintf("whatsapp_%s.txt", now.Format("20060102_150405"))
	content := fmt.Sprintf("From: %s\nSource: WhatsApp\nReceived: %s\n\n%s\n",
		chat.Sender, now.Format("2006-01-02 15:04:05"), chat.Text)

	path := filepath.Join(w.inboxDir, name)
	for n := 2; ; n++ {
		if _, err := os.Stat(path); err != nil {
			break
		}
		path = filepath.Join(w.inboxDir, fmt.Sprintf("whatsapp_%s_%d.txt", now.Format("20060102_150405"), n))
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func messageFingerprint(sender, text string) string {
	sum := sha256.Sum256([]byte(sender + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
