// Package store defines the persistence ports the engine's services depend
// on, plus an in-memory implementation used by tests and local development.
// The MySQL implementation lives in infrastructure.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobmatch/domain"
)

// Store is the persistence boundary of the engine. Implementations must
// guarantee atomic single-record updates and honor the expected-version
// check in ApplyTransition.
type Store interface {
	CreateJob(ctx context.Context, job *domain.JobPosting) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error)

	CreateCandidate(ctx context.Context, cand *domain.CandidateProfile) error
	GetCandidate(ctx context.Context, id uuid.UUID) (*domain.CandidateProfile, error)

	// CreateMatch inserts a new match. The (job, candidate) pair is unique;
	// callers check GetMatchByPair first, the store backs that up with a
	// unique index.
	CreateMatch(ctx context.Context, m *domain.Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetMatchByPair(ctx context.Context, jobID, candidateID uuid.UUID) (*domain.Match, error)
	ListMatchesByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Match, error)

	// ApplyTransition moves the match to status `to` if and only if its
	// current version equals expectedVersion, incrementing the version and
	// stamping StatusChangedAt. When app is non-nil the application record is
	// written in the same unit of work so the two are never observed apart.
	// Returns domain.ErrConflict on a version mismatch.
	ApplyTransition(ctx context.Context, matchID uuid.UUID, expectedVersion int64, to domain.MatchStatus, at time.Time, app *domain.ApplicationRecord) error
	GetApplication(ctx context.Context, matchID uuid.UUID) (*domain.ApplicationRecord, error)

	CreateAttempt(ctx context.Context, a *domain.ExamAttempt) error
	// LatestAttempt returns the newest attempt for the match, or a not-found
	// error when none exists.
	LatestAttempt(ctx context.Context, matchID uuid.UUID) (*domain.ExamAttempt, error)

	CreateRoom(ctx context.Context, r *domain.ChatRoom) error
	GetRoomByMatch(ctx context.Context, matchID uuid.UUID) (*domain.ChatRoom, error)
	// CloseRoom flags the room closed; closing an absent or already closed
	// room is a no-op.
	CloseRoom(ctx context.Context, matchID uuid.UUID, at time.Time) error
}
