package common

import (
	"errors"
	"fmt"
)

// ErrorKind tags a DomainError so callers can switch on the failure class
// instead of parsing message strings.
type ErrorKind string

const (
	ErrPalletNotFound         ErrorKind = "PALLET_NOT_FOUND"
	ErrBoxNotFound            ErrorKind = "BOX_NOT_FOUND"
	ErrPalletFull             ErrorKind = "PALLET_FULL"
	ErrCombinationConflict    ErrorKind = "COMBINATION_CONFLICT"
	ErrPoolExhausted          ErrorKind = "POOL_EXHAUSTED"
	ErrSequencerInconsistency ErrorKind = "SEQUENCER_INCONSISTENCY"
)

// DomainError is a business-state failure surfaced to callers. These are
// legitimate outcomes, never retried automatically. SequencerInconsistency is
// the exception: it marks broken stored data and must be logged loudly at the
// point of detection.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with a formatted message.
func NewDomainError(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err if it wraps a DomainError.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
