package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus is the canonical lifecycle state of a job-candidate pair.
// The Match is the single source of truth; the ApplicationRecord mirrors it.
type MatchStatus string

const (
	StatusPending   MatchStatus = "pending"
	StatusApplied   MatchStatus = "applied"
	StatusScreening MatchStatus = "screening"
	StatusInterview MatchStatus = "interview"
	StatusHired     MatchStatus = "hired"
	StatusRejected  MatchStatus = "rejected"
)

// IsValid reports whether the status is a known lifecycle state.
func (s MatchStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApplied, StatusScreening, StatusInterview, StatusHired, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave the state.
func (s MatchStatus) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected
}

// Match links exactly one JobPosting to exactly one CandidateProfile.
// At most one Match exists per (job, candidate) pair. Version backs the
// optimistic-concurrency check on every status update.
type Match struct {
	ID              uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	JobID           uuid.UUID   `gorm:"type:char(36);not null;uniqueIndex:idx_job_candidate" json:"job_id"`
	CandidateID     uuid.UUID   `gorm:"type:char(36);not null;uniqueIndex:idx_job_candidate" json:"candidate_id"`
	Score           float64     `json:"score"`
	Explanation     string      `gorm:"type:text" json:"explanation"`
	Status          MatchStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	JobSource       JobSource   `gorm:"size:16;not null;default:'internal'" json:"job_source"`
	Version         int64       `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time   `json:"created_at"`
	StatusChangedAt time.Time   `json:"status_changed_at"`
}

// ApplicationRecord is the candidate-initiated counterpart of a Match,
// created when the candidate applies. Its status is a materialized view of
// the Match status and must never diverge outside a single unit of work.
type ApplicationRecord struct {
	ID        uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	MatchID   uuid.UUID   `gorm:"type:char(36);not null;uniqueIndex" json:"match_id"`
	Status    MatchStatus `gorm:"size:16;not null" json:"status"`
	AppliedAt time.Time   `json:"applied_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
