package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExamAttempt records one graded submission for a match. Attempts are
// immutable once written; when retakes are allowed the newest attempt is the
// one that counts toward gating.
type ExamAttempt struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	MatchID     uuid.UUID   `gorm:"type:char(36);not null;index" json:"match_id"`
	CandidateID uuid.UUID   `gorm:"type:char(36);not null" json:"candidate_id"`
	Answers     AnswerSheet `gorm:"type:json;not null" json:"answers"`
	Score       float64     `json:"score"`
	Passed      bool        `json:"passed"`
	SubmittedAt time.Time   `json:"submitted_at"`
}
