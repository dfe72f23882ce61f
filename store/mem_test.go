package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobmatch/domain"
)

func seedMatch(t *testing.T, s *Mem) *domain.Match {
	t.Helper()
	m := &domain.Match{
		ID:          uuid.New(),
		JobID:       uuid.New(),
		CandidateID: uuid.New(),
		Status:      domain.StatusPending,
		Version:     1,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.CreateMatch(context.Background(), m); err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m
}

func TestMem_ApplyTransitionVersionCheck(t *testing.T) {
	s := NewMem()
	m := seedMatch(t, s)
	ctx := context.Background()

	if err := s.ApplyTransition(ctx, m.ID, 1, domain.StatusApplied, time.Now(), nil); err != nil {
		t.Fatalf("first transition: %v", err)
	}

	// Retrying with the stale version must conflict.
	err := s.ApplyTransition(ctx, m.ID, 1, domain.StatusApplied, time.Now(), nil)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, _ := s.GetMatch(ctx, m.ID)
	if got.Version != 2 || got.Status != domain.StatusApplied {
		t.Fatalf("unexpected state after conflict: %s v%d", got.Status, got.Version)
	}
}

func TestMem_ApplyTransitionUnknownMatch(t *testing.T) {
	s := NewMem()
	err := s.ApplyTransition(context.Background(), uuid.New(), 1, domain.StatusApplied, time.Now(), nil)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMem_MatchPairUnique(t *testing.T) {
	s := NewMem()
	m := seedMatch(t, s)

	dup := &domain.Match{ID: uuid.New(), JobID: m.JobID, CandidateID: m.CandidateID, Version: 1}
	if err := s.CreateMatch(context.Background(), dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate pair should conflict, got %v", err)
	}
}

func TestMem_RoomPerMatchUnique(t *testing.T) {
	s := NewMem()
	ctx := context.Background()
	matchID := uuid.New()

	if err := s.CreateRoom(ctx, &domain.ChatRoom{ID: uuid.New(), MatchID: matchID, Open: true}); err != nil {
		t.Fatalf("create room: %v", err)
	}
	err := s.CreateRoom(ctx, &domain.ChatRoom{ID: uuid.New(), MatchID: matchID, Open: true})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second room should conflict, got %v", err)
	}
}

func TestMem_CloseRoomIsIdempotent(t *testing.T) {
	s := NewMem()
	ctx := context.Background()
	matchID := uuid.New()

	// Closing an absent room is a no-op.
	if err := s.CloseRoom(ctx, matchID, time.Now()); err != nil {
		t.Fatalf("close absent room: %v", err)
	}

	if err := s.CreateRoom(ctx, &domain.ChatRoom{ID: uuid.New(), MatchID: matchID, Open: true}); err != nil {
		t.Fatalf("create room: %v", err)
	}
	now := time.Now().UTC()
	if err := s.CloseRoom(ctx, matchID, now); err != nil {
		t.Fatalf("close room: %v", err)
	}
	if err := s.CloseRoom(ctx, matchID, now.Add(time.Hour)); err != nil {
		t.Fatalf("re-close room: %v", err)
	}

	r, err := s.GetRoomByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if r.Open || r.ClosedAt == nil || !r.ClosedAt.Equal(now) {
		t.Fatalf("unexpected room state: %+v", r)
	}
}
