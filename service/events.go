package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobmatch/domain"
)

// Routing keys published on the event stream. Consumers (notification
// fan-out, realtime transport) live outside the engine.
const (
	TopicMatchCreated  = "match.created"
	TopicStatusChanged = "match.status_changed"
	TopicExamGraded    = "exam.graded"
	TopicChatOpened    = "chat.opened"
	TopicChatClosed    = "chat.closed"
)

// Publisher hands domain events to the messaging transport. Publishing is
// advisory and happens after the state change commits; a publish failure
// never rolls back the operation.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// NopPublisher drops all events. Used in tests and when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// MatchCreatedEvent announces a freshly scored match.
type MatchCreatedEvent struct {
	MatchID     uuid.UUID `json:"match_id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Score       float64   `json:"score"`
}

// StatusChangedEvent announces a committed lifecycle transition.
type StatusChangedEvent struct {
	MatchID uuid.UUID          `json:"match_id"`
	From    domain.MatchStatus `json:"from"`
	To      domain.MatchStatus `json:"to"`
	At      time.Time          `json:"at"`
}

// ExamGradedEvent announces a graded attempt.
type ExamGradedEvent struct {
	MatchID   uuid.UUID `json:"match_id"`
	AttemptID uuid.UUID `json:"attempt_id"`
	Score     float64   `json:"score"`
	Passed    bool      `json:"passed"`
}

// ChatRoomEvent announces a room opening or closing.
type ChatRoomEvent struct {
	MatchID uuid.UUID `json:"match_id"`
	RoomID  uuid.UUID `json:"room_id"`
	Open    bool      `json:"open"`
}
