package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobmatch/domain"
	"jobmatch/store"
)

// ChatService is the chat-availability gate. It decides whether a direct
// channel between candidate and hiring manager may exist; message delivery
// belongs to the external realtime transport.
type ChatService struct {
	store store.Store
	pub   Publisher
	log   *zap.Logger
	now   func() time.Time
}

// NewChatService wires a ChatService.
func NewChatService(st store.Store, pub Publisher, log *zap.Logger) *ChatService {
	if pub == nil {
		pub = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatService{store: st, pub: pub, log: log, now: time.Now}
}

// CanOpenChat reports whether the gate authorizes messaging for the match:
// internal-source jobs from screening onward on the hire path. External jobs
// never open chat here, and a rejected match closes the door for good.
func CanOpenChat(m *domain.Match) bool {
	if m.JobSource == domain.JobSourceExternal {
		return false
	}
	switch m.Status {
	case domain.StatusScreening, domain.StatusInterview, domain.StatusHired:
		return true
	}
	return false
}

// OpenChat lazily creates the match's one-to-one room. Opening an already
// open room returns the existing one; the one-room-per-match invariant is
// backed by the store's unique index.
func (s *ChatService) OpenChat(ctx context.Context, matchID uuid.UUID) (*domain.ChatRoom, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if room, err := s.store.GetRoomByMatch(ctx, matchID); err == nil {
		return room, nil
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	if !CanOpenChat(m) {
		return nil, fmt.Errorf("match %s in state %s: %w", m.ID, m.Status, domain.ErrChatUnavailable)
	}

	room := &domain.ChatRoom{
		ID:        uuid.New(),
		MatchID:   matchID,
		Open:      true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		// Lost a race: somebody opened the room between our read and write.
		if errors.Is(err, domain.ErrConflict) {
			return s.store.GetRoomByMatch(ctx, matchID)
		}
		return nil, fmt.Errorf("create chat room: %w", err)
	}

	if err := s.pub.Publish(ctx, TopicChatOpened, ChatRoomEvent{
		MatchID: matchID, RoomID: room.ID, Open: true,
	}); err != nil {
		s.log.Warn("event publish failed", zap.String("topic", TopicChatOpened), zap.Error(err))
	}
	return room, nil
}

// RoomForMatch returns the match's room when one exists.
func (s *ChatService) RoomForMatch(ctx context.Context, matchID uuid.UUID) (*domain.ChatRoom, error) {
	return s.store.GetRoomByMatch(ctx, matchID)
}
