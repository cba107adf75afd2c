/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Error kinds and the last-error handle
 */
package ipp

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way every component of this package
// reports it, independent of the Go error value that also carries it.
type Kind int

// Kind values
const (
	KindNone Kind = iota // No error recorded yet
	KindInvalidArgument
	KindNotFound
	KindPermissionDenied
	KindResourceUnavailable
	KindFormatError
	KindValueOutOfRange
	KindLimitExceeded
	KindVersionUnsupported
	KindCancelled
	KindIOError
	KindInternalError
)

// String returns a human-readable Kind name
func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var kindNames = [...]string{
	KindNone:                "none",
	KindInvalidArgument:     "invalid-argument",
	KindNotFound:            "not-found",
	KindPermissionDenied:    "permission-denied",
	KindResourceUnavailable: "resource-unavailable",
	KindFormatError:         "format-error",
	KindValueOutOfRange:     "value-out-of-range",
	KindLimitExceeded:       "limit-exceeded",
	KindVersionUnsupported:  "version-unsupported",
	KindCancelled:           "cancelled",
	KindIOError:             "io-error",
	KindInternalError:       "internal-error",
}

// Sentinel errors: package-level errors.New values that callers can
// compare against with errors.Is.
var (
	ErrCancelled            = errors.New("ipp: operation cancelled")
	ErrMessageTruncated     = errors.New("ipp: message truncated")
	ErrNoGroup              = errors.New("ipp: attribute without a group")
	ErrDuplicateName        = errors.New("ipp: duplicate attribute name in group")
	ErrUnbalancedCollection = errors.New("ipp: unbalanced begin/end collection")
	ErrInternal             = errors.New("ipp: internal error")
)

// LastError is an explicit per-owner record of the most recent
// failure. Go has no implicit thread-local storage, so instead of a
// process-global slot the handle is explicit: Decoder, Encoder and
// Message each embed one and expose it through Last().
type LastError struct {
	kind Kind
	msg  string
}

// SetLast records kind and a formatted message, overwriting whatever
// was there. Callers that need a translated message format it before
// calling SetLast; no message catalog is wired in here.
func (le *LastError) SetLast(kind Kind, format string, args ...interface{}) {
	le.kind = kind
	le.msg = fmt.Sprintf(format, args...)
}

// Kind returns the last recorded Kind. KindNone if nothing failed yet.
func (le *LastError) Kind() Kind {
	return le.kind
}

// Message returns the last recorded message. Never returns a nil string;
// absence of an error is represented by the empty string.
func (le *LastError) Message() string {
	return le.msg
}

// Clear resets the handle to its initial (no error) state.
func (le *LastError) Clear() {
	le.kind = KindNone
	le.msg = ""
}

// Err builds a conventional Go error from the current state, or nil if
// KindNone. Components return this alongside recording on LastError, so
// callers that only want normal Go error propagation never need to touch
// the Kind type at all.
func (le *LastError) Err() error {
	if le.kind == KindNone {
		return nil
	}
	return fmt.Errorf("%s: %s", le.kind, le.msg)
}
