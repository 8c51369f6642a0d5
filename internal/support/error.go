package support

import "errors"

var (
	ErrTicketNotFound    = errors.New("support ticket not found")
	ErrMissingSubject    = errors.New("ticket subject is required")
	ErrInvalidTransition = errors.New("invalid ticket status transition")
)
