package wlanapi

import (
	"errors"
	"fmt"
)

var (
	ErrServiceUnavailable = errors.New("wlan service unavailable")
	ErrEnumerationFailed  = errors.New("interface enumeration failed")
	ErrProfileListFailed  = errors.New("profile list failed")
	ErrProfileFetchFailed = errors.New("profile fetch failed")
	ErrSessionClosed      = errors.New("wlan session closed")

	// ErrNilBuffer means the service reported success without a buffer,
	// or a view was requested over a nil pointer with a nonzero length.
	ErrNilBuffer = errors.New("nil buffer")
	// ErrTooManyItems means a list header claims more than MaxListItems.
	ErrTooManyItems = errors.New("list length out of bounds")
	// ErrUnterminated means no NUL was found within a text field's bounds.
	ErrUnterminated = errors.New("unterminated string")
)

// RecordError describes a single list entry that could not be decoded.
// The remaining entries of the list are unaffected.
type RecordError struct {
	Index int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
