package model

import "errors"

// Errors surfaced by user-facing operations. Deferred jobs never return
// these to callers; their failures are logged and absorbed by fallbacks.
var (
	// ErrNotFound means the interview or question does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied means the caller does not own the interview.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidTransition means the interview is not in a state that
	// permits the requested operation.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrAlreadyAnswered means a response already exists for the question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrValidation means the caller supplied an unusable argument.
	ErrValidation = errors.New("invalid argument")
)
