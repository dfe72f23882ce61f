package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the engine. Services wrap them with context;
// the HTTP boundary maps them to status codes with errors.Is/errors.As.
var (
	// ErrConflict signals an optimistic-concurrency mismatch: the match was
	// modified between the caller's read and write. Re-read and retry.
	ErrConflict = errors.New("match was modified concurrently")

	// ErrAlreadySubmitted rejects a re-submission when retakes are not allowed.
	ErrAlreadySubmitted = errors.New("exam already submitted for this match")

	// ErrJobHasNoExam rejects an exam submission against a job without one.
	ErrJobHasNoExam = errors.New("job has no exam configured")

	// ErrJobClosed rejects new matches against a closed posting.
	ErrJobClosed = errors.New("job is closed")

	// ErrQuotaExhausted rejects match creation when the caller-supplied quota
	// precondition says the period budget is spent. The engine never computes
	// quotas itself.
	ErrQuotaExhausted = errors.New("match quota exhausted for this period")

	// ErrForbidden rejects a call made by the wrong kind of actor.
	ErrForbidden = errors.New("actor may not perform this operation")

	// ErrChatUnavailable rejects opening a chat the gate does not authorize.
	ErrChatUnavailable = errors.New("chat is not available for this match")
)

// NotFoundError identifies a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InvalidTransitionError identifies a lifecycle rule violation: the requested
// move is not in the allowed edge set, or a gate blocked it.
type InvalidTransitionError struct {
	From   MatchStatus
	To     MatchStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid transition %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// IsInvalidTransition reports whether err is (or wraps) an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}
