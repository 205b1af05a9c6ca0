package notification

import "context"

const DefaultTitle = "Notification"

// Audience picks which sender application a message goes out through.
type Audience string

const (
	AudienceStaff Audience = ""
	AudienceAdmin Audience = "admin"
)

type Message struct {
	Title    string
	Text     string
	Audience Audience
}

// Notifier delivers messages to the shop staff.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
