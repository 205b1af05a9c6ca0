package member

import "errors"

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrPhoneExists       = errors.New("phone number already registered")
	ErrAlreadyRegistered = errors.New("user already registered")
)
