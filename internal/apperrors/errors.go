// Package apperrors defines the errors that end a session for good.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies fatal session errors.
type Kind int

const (
	KindAuth Kind = iota + 1
	KindProtocol
	KindMerge
	KindAPI
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindProtocol:
		return "protocol"
	case KindMerge:
		return "merge"
	case KindAPI:
		return "api"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// SessionError is a failure the session does not recover from.
type SessionError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *SessionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Is matches any SessionError of the same kind, so sentinel values work with
// errors.Is regardless of message.
func (e *SessionError) Is(target error) bool {
	t, ok := target.(*SessionError)
	return ok && t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrAuth     = &SessionError{Kind: KindAuth}
	ErrProtocol = &SessionError{Kind: KindProtocol}
	ErrMerge    = &SessionError{Kind: KindMerge}
	ErrAPI      = &SessionError{Kind: KindAPI}
	ErrConfig   = &SessionError{Kind: KindConfig}
)

// ErrAuthFailed is returned when the server rejects the token.
var ErrAuthFailed = &SessionError{Kind: KindAuth, Message: "authentication failed"}

// New wraps err as a fatal error of the given kind.
func New(kind Kind, message string, err error) *SessionError {
	return &SessionError{Kind: kind, Message: message, Err: err}
}

// IsFatal reports whether err carries a SessionError.
func IsFatal(err error) bool {
	var se *SessionError
	return errors.As(err, &se)
}
