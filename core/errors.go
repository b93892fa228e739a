package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure classes of conversation operations.
// Callers branch on the kind, never on error message text.
type ErrorKind int

const (
	// KindValidation covers rejected input (empty text, empty batch).
	// Validation failures are silent no-ops and never reach callers.
	KindValidation ErrorKind = iota
	// KindCancelled marks an in-flight generation superseded or aborted.
	// It is an expected outcome, not logged as a fault.
	KindCancelled
	// KindTransport covers completion-request and mid-stream delivery
	// failures.
	KindTransport
	// KindStorage covers blob and snapshot store failures. Storage errors
	// are logged and never block message-store mutations.
	KindStorage
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCancelled:
		return "cancelled"
	case KindTransport:
		return "transport"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error attaches an ErrorKind and the failing operation to an underlying
// error so callers can switch on kind via KindOf.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind and operation name.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the ErrorKind from an error chain. Bare context
// cancellation is classified as KindCancelled.
func KindOf(err error) (ErrorKind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled, true
	}
	return 0, false
}

// IsCancelled reports whether err represents a cancellation outcome.
func IsCancelled(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindCancelled
}
