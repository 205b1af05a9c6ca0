package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client sends plain-text messages to one chat.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewClient(token, chatID string) (*Client, error) {
	return NewClientWithEndpoint(token, chatID, tgbotapi.APIEndpoint, &http.Client{Timeout: 10 * time.Second})
}

// NewClientWithEndpoint is NewClient against another Bot API host. endpoint
// follows tgbotapi.APIEndpoint, with %s for the token and the method.
func NewClientWithEndpoint(token, chatID, endpoint string, httpClient tgbotapi.HTTPClient) (*Client, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	bot.Debug = false

	return &Client{bot: bot, chatID: id}, nil
}

func (c *Client) Send(ctx context.Context, title, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := text
	if title != "" {
		body = title + "\n" + text
	}

	if _, err := c.bot.Send(tgbotapi.NewMessage(c.chatID, body)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
