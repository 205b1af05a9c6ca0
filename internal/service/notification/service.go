package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/notification"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/pushover"
	"github.com/cmlabs-hris/liff-attendance-go/internal/pkg/telegram"
)

const (
	KindPushover = "pushover"
	KindTelegram = "telegram"
	KindNone     = "none"
)

// Config selects and configures the notification backend.
type Config struct {
	Kind string

	PushoverToken      string
	PushoverAdminToken string
	PushoverUser       string

	TelegramToken  string
	TelegramChatID string
}

// NewNotifier builds the notifier named by cfg.Kind.
func NewNotifier(cfg Config) (notification.Notifier, error) {
	switch cfg.Kind {
	case KindPushover:
		return NewPushoverNotifier(pushover.NewClient(cfg.PushoverUser), cfg.PushoverToken, cfg.PushoverAdminToken), nil
	case KindTelegram:
		client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		return NewTelegramNotifier(client), nil
	case KindNone, "":
		return noopNotifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", notification.ErrUnknownNotifier, cfg.Kind)
	}
}

type pushoverSender interface {
	Send(ctx context.Context, token, title, message string) error
}

type pushoverNotifier struct {
	client     pushoverSender
	token      string
	adminToken string
}

// NewPushoverNotifier sends staff messages with token and admin messages with
// adminToken, falling back to token when adminToken is empty.
func NewPushoverNotifier(client pushoverSender, token, adminToken string) notification.Notifier {
	return &pushoverNotifier{client: client, token: token, adminToken: adminToken}
}

func (p *pushoverNotifier) Send(ctx context.Context, msg notification.Message) error {
	token := p.token
	if msg.Audience == notification.AudienceAdmin && p.adminToken != "" {
		token = p.adminToken
	}
	return p.client.Send(ctx, token, titleOf(msg), msg.Text)
}

type telegramSender interface {
	Send(ctx context.Context, title, text string) error
}

type telegramNotifier struct {
	client telegramSender
}

func NewTelegramNotifier(client telegramSender) notification.Notifier {
	return &telegramNotifier{client: client}
}

func (t *telegramNotifier) Send(ctx context.Context, msg notification.Message) error {
	return t.client.Send(ctx, titleOf(msg), msg.Text)
}

type noopNotifier struct{}

func (noopNotifier) Send(ctx context.Context, msg notification.Message) error {
	slog.Debug("Notification dropped, no notifier configured", "title", msg.Title)
	return nil
}

func titleOf(msg notification.Message) string {
	if msg.Title == "" {
		return notification.DefaultTitle
	}
	return msg.Title
}

// BestEffort sends msg and logs a failure instead of returning it. Callers
// use it for side notifications that must not fail the main operation.
func BestEffort(ctx context.Context, n notification.Notifier, msg notification.Message) {
	if n == nil {
		return
	}
	if err := n.Send(ctx, msg); err != nil {
		slog.Warn("Failed to send notification",
			"title", msg.Title,
			"error", err)
	}
}
