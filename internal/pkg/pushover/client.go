// Package pushover delivers messages through Pushover applications.
package pushover

import (
	"context"
	"errors"
	"fmt"
	"sync"

	po "github.com/gregdel/pushover"
)

var ErrRequestFailed = errors.New("pushover request failed")

// Client sends to one Pushover user or group key. Each application token
// gets its own *po.Pushover, so staff and admin messages share a Client.
type Client struct {
	recipient *po.Recipient

	mu   sync.Mutex
	apps map[string]*po.Pushover
}

func NewClient(user string) *Client {
	return &Client{
		recipient: po.NewRecipient(user),
		apps:      make(map[string]*po.Pushover),
	}
}

func (c *Client) app(token string) *po.Pushover {
	c.mu.Lock()
	defer c.mu.Unlock()
	app, ok := c.apps[token]
	if !ok {
		app = po.New(token)
		c.apps[token] = app
	}
	return app
}

// Send delivers one message through the application identified by token.
// The library call has no context; a canceled ctx abandons the wait.
func (c *Client) Send(ctx context.Context, token, title, message string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	app := c.app(token)
	msg := po.NewMessageWithTitle(message, title)

	done := make(chan error, 1)
	go func() {
		_, err := app.SendMessage(msg, c.recipient)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrRequestFailed, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		return nil
	}
}
