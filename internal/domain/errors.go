package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntry is the sentinel wrapped by every ValidationError.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrUnknownAccount is the sentinel wrapped by every UnknownAccountError.
	ErrUnknownAccount = errors.New("unknown account")

	ErrEntryNotFound    = errors.New("entry not found")
	ErrUnknownEntryKind = errors.New("unknown entry kind")
)

// ValidationError reports an entry that failed a structural invariant.
// It is fatal to the whole computation it occurs in: a bad entry must never
// be skipped and the remaining history presented as an authoritative balance.
type ValidationError struct {
	EntryID string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("invalid entry: %s", e.Reason)
	}
	return fmt.Sprintf("invalid entry %s: %s", e.EntryID, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEntry }

// UnknownAccountError reports a label with no canonical account.
type UnknownAccountError struct {
	Label string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account label %q", e.Label)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownAccount }
