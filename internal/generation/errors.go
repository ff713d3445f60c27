package generation

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindUnparsableResponse  ErrorKind = "unparsable_response"
)

var (
	ErrProviderUnavailable = &Error{Kind: KindProviderUnavailable, Message: "generation provider unavailable"}
	ErrUnparsableResponse  = &Error{Kind: KindUnparsableResponse, Message: "generation response could not be parsed"}
)

const snippetLength = 300

// Error is a generation failure surfaced to the caller. Snippet carries the
// start of the provider's raw text for unparsable responses.
type Error struct {
	Kind    ErrorKind
	Message string
	Snippet string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrUnparsableResponse) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func providerUnavailable(err error) *Error {
	return &Error{Kind: KindProviderUnavailable, Message: "generation provider unavailable", Err: err}
}

func unparsable(msg, raw string) *Error {
	return &Error{Kind: KindUnparsableResponse, Message: msg, Snippet: snippet(raw)}
}

func snippet(raw string) string {
	r := []rune(raw)
	if len(r) <= snippetLength {
		return raw
	}
	return string(r[:snippetLength]) + "..."
}
