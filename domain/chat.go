package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is a one-to-one companion of a Match, created lazily once the
// availability gate authorizes direct messaging. It holds no conversation
// state; delivery lives in the external realtime transport.
type ChatRoom struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	MatchID   uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex" json:"match_id"`
	Open      bool       `gorm:"not null;default:true" json:"open"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}
