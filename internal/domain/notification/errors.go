package notification

import "errors"

var ErrUnknownNotifier = errors.New("unknown notifier")
