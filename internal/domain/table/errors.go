package table

import "errors"

var ErrTableNotConfigured = errors.New("table not configured")
