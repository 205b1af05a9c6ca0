package sheet

import "errors"

var (
	ErrNoData = errors.New("no data in sheet")
)
