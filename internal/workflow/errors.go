package workflow

import "errors"

var (
	// ErrInvalidTransition rejects a (status, role, action) triple that is
	// not in the transition table, including replays against a submission
	// that already moved on.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotFound means the submission id is unknown to the store.
	ErrNotFound = errors.New("submission not found")

	// ErrValidation means the input itself is malformed (missing title,
	// empty file, unknown template).
	ErrValidation = errors.New("validation failed")
)
