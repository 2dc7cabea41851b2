package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEvent   = errors.New("invalid event")
	ErrMissingConfig  = errors.New("missing configuration")
	ErrOrchestrator   = errors.New("orchestrator query failed")
	ErrPublish        = errors.New("publish failed")
	ErrMissingMessage = errors.New("record has no message")
	ErrDelivery       = errors.New("webhook delivery failed")
)

// Wrap annotates err with a formatted message while keeping sentinel intact for errors.Is.
func Wrap(sentinel error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, a...))
}

// WrapCause wraps both the sentinel and the underlying cause.
func WrapCause(sentinel, cause error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s: %w", sentinel, fmt.Sprintf(format, a...), cause)
}

func IsInvalidEvent(err error) bool {
	return errors.Is(err, ErrInvalidEvent)
}

func IsMissingConfig(err error) bool {
	return errors.Is(err, ErrMissingConfig)
}
