package groupsig

import (
	"github.com/go-errors/errors"
)

// Sentinel errors of the registry, store and envelope layers. Failed
// cryptographic checks are boolean results, never errors.
var (
	// ErrMemberNotFound is returned when a member ID has no entry in the
	// consulted registry or store.
	ErrMemberNotFound = errors.New("groupsig: member not found")

	// ErrDuplicateEntry is returned when appending an entry whose ID is
	// already registered with different contents. Re-appending identical
	// contents is not an error.
	ErrDuplicateEntry = errors.New("groupsig: conflicting entry for this member")

	// ErrUnknownScheme is returned when no registered scheme carries the
	// requested name.
	ErrUnknownScheme = errors.New("groupsig: unknown scheme")

	// ErrSchemeMismatch is returned when an envelope or object belongs to a
	// different scheme than the one expected by the caller.
	ErrSchemeMismatch = errors.New("groupsig: scheme mismatch")

	// ErrKindMismatch is returned when an envelope holds a different kind
	// of object than the one expected by the caller.
	ErrKindMismatch = errors.New("groupsig: envelope kind mismatch")
)
