package entities

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrGateway      = errors.New("payment gateway error")
	ErrNotFound     = errors.New("not found")
	ErrDecode       = errors.New("decode error")
)

// InputError reports a missing or invalid caller-supplied field.
// It is always raised before any side effect.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// GatewayError carries the vendor status code and message of a failed call.
// Message is meant for logs, not for end users.
type GatewayError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("payment gateway error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

func (e *GatewayError) Unwrap() error { return e.Cause }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DecodeError reports a malformed PIX payload.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "pix decode error: " + e.Reason }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
