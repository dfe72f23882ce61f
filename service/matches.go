// Package service orchestrates the engine's operations over the store: match
// creation and lifecycle transitions, exam submission, ranking reads and the
// chat-availability gate. Each state-changing call is one atomic unit of
// work; concurrency control is optimistic, keyed on the match version.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobmatch/domain"
	"jobmatch/lifecycle"
	"jobmatch/scoring"
	"jobmatch/store"
)

// MatchService owns match creation and lifecycle transitions.
type MatchService struct {
	store  store.Store
	scorer *scoring.Engine
	pub    Publisher
	log    *zap.Logger
	now    func() time.Time
}

// NewMatchService wires a MatchService. A nil publisher falls back to NopPublisher.
func NewMatchService(st store.Store, scorer *scoring.Engine, pub Publisher, log *zap.Logger) *MatchService {
	if pub == nil {
		pub = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MatchService{store: st, scorer: scorer, pub: pub, log: log, now: time.Now}
}

// CreateMatchInput carries the pair to match plus the caller-supplied quota
// verdict. The billing service decides quotas; the engine only honors the answer.
type CreateMatchInput struct {
	JobID          uuid.UUID
	CandidateID    uuid.UUID
	QuotaExhausted bool
}

// CreateMatch scores the pair and records the match in pending state. The
// operation is idempotent per (job, candidate): an existing match is returned
// as-is, never duplicated or re-scored.
func (s *MatchService) CreateMatch(ctx context.Context, in CreateMatchInput) (*domain.Match, error) {
	if in.QuotaExhausted {
		return nil, domain.ErrQuotaExhausted
	}

	job, err := s.store.GetJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusClosed {
		return nil, fmt.Errorf("create match for job %s: %w", job.ID, domain.ErrJobClosed)
	}
	cand, err := s.store.GetCandidate(ctx, in.CandidateID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.store.GetMatchByPair(ctx, in.JobID, in.CandidateID); err == nil {
		return existing, nil
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	res := s.scorer.ComputeMatch(job, cand)
	now := s.now().UTC()
	m := &domain.Match{
		ID:              uuid.New(),
		JobID:           job.ID,
		CandidateID:     cand.ID,
		Score:           res.Score,
		Explanation:     res.Explanation,
		Status:          domain.StatusPending,
		JobSource:       job.Source,
		Version:         1,
		CreatedAt:       now,
		StatusChangedAt: now,
	}
	if err := s.store.CreateMatch(ctx, m); err != nil {
		// Lost a race with a concurrent create for the same pair: the unique
		// index held, so return the winner.
		if errors.Is(err, domain.ErrConflict) {
			return s.store.GetMatchByPair(ctx, in.JobID, in.CandidateID)
		}
		return nil, fmt.Errorf("create match: %w", err)
	}

	s.publish(ctx, TopicMatchCreated, MatchCreatedEvent{
		MatchID: m.ID, JobID: m.JobID, CandidateID: m.CandidateID, Score: m.Score,
	})
	return m, nil
}

// GetMatch loads a match by ID.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	return s.store.GetMatch(ctx, id)
}

// GetApplication loads the application record mirroring a match.
func (s *MatchService) GetApplication(ctx context.Context, matchID uuid.UUID) (*domain.ApplicationRecord, error) {
	return s.store.GetApplication(ctx, matchID)
}

// TransitionInput is one requested lifecycle move. ExpectedVersion is the
// version the caller last read; zero means "whatever is current", skipping
// the staleness check.
type TransitionInput struct {
	MatchID         uuid.UUID
	To              domain.MatchStatus
	Actor           domain.Actor
	ExpectedVersion int64
}

// Transition applies one lifecycle move. It enforces the edge table, the
// actor's role, ownership for candidate-side moves, the external-job short
// path and the exam gate, then writes the match and its application record
// atomically under the optimistic-concurrency check. Terminal states close
// any open chat room in the same call.
func (s *MatchService) Transition(ctx context.Context, in TransitionInput) (*domain.Match, error) {
	m, err := s.store.GetMatch(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}

	expected := in.ExpectedVersion
	if expected == 0 {
		expected = m.Version
	} else if expected != m.Version {
		return nil, fmt.Errorf("transition %s: %w", m.ID, domain.ErrConflict)
	}

	if m.JobSource == domain.JobSourceExternal {
		if !(m.Status == domain.StatusPending && in.To == domain.StatusApplied) {
			return nil, &domain.InvalidTransitionError{
				From: m.Status, To: in.To,
				Reason: "externally sourced jobs track no state beyond applied",
			}
		}
	}

	if err := lifecycle.Check(m.Status, in.To, in.Actor.Role); err != nil {
		return nil, err
	}
	if in.Actor.Role == domain.RoleCandidate && in.Actor.ID != m.CandidateID.String() {
		return nil, fmt.Errorf("transition %s: %w", m.ID, domain.ErrForbidden)
	}

	if m.Status == domain.StatusPending && in.To == domain.StatusApplied {
		if err := s.checkExamGate(ctx, m); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	var app *domain.ApplicationRecord
	if in.To == domain.StatusApplied {
		// The candidate's act of applying materializes the application record.
		app = &domain.ApplicationRecord{
			ID:        uuid.New(),
			MatchID:   m.ID,
			Status:    in.To,
			AppliedAt: now,
			UpdatedAt: now,
		}
	}

	if err := s.store.ApplyTransition(ctx, m.ID, expected, in.To, now, app); err != nil {
		return nil, err
	}

	from := m.Status
	updated, err := s.store.GetMatch(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	if in.To.IsTerminal() {
		s.closeChat(ctx, m.ID, now)
	}

	s.publish(ctx, TopicStatusChanged, StatusChangedEvent{
		MatchID: m.ID, From: from, To: in.To, At: now,
	})
	return updated, nil
}

// checkExamGate blocks pending -> applied on exam-gated jobs until a passing
// attempt is on record. The blocked move surfaces as an invalid transition,
// not a distinct error: the UI routes such candidates through the exam first.
func (s *MatchService) checkExamGate(ctx context.Context, m *domain.Match) error {
	job, err := s.store.GetJob(ctx, m.JobID)
	if err != nil {
		return err
	}
	if !job.HasExam() {
		return nil
	}
	attempt, err := s.store.LatestAttempt(ctx, m.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return &domain.InvalidTransitionError{
				From: m.Status, To: domain.StatusApplied,
				Reason: "job requires a passing exam attempt before applying",
			}
		}
		return err
	}
	if !attempt.Passed {
		return &domain.InvalidTransitionError{
			From: m.Status, To: domain.StatusApplied,
			Reason: fmt.Sprintf("latest exam attempt scored %.1f, below the passing threshold %.1f",
				attempt.Score, job.Exam.PassingScore),
		}
	}
	return nil
}

func (s *MatchService) closeChat(ctx context.Context, matchID uuid.UUID, at time.Time) {
	room, err := s.store.GetRoomByMatch(ctx, matchID)
	if err != nil || !room.Open {
		return
	}
	if err := s.store.CloseRoom(ctx, matchID, at); err != nil {
		s.log.Warn("closing chat room failed",
			zap.String("match_id", matchID.String()), zap.Error(err))
		return
	}
	s.publish(ctx, TopicChatClosed, ChatRoomEvent{MatchID: matchID, RoomID: room.ID, Open: false})
}

func (s *MatchService) publish(ctx context.Context, topic string, payload any) {
	if err := s.pub.Publish(ctx, topic, payload); err != nil {
		s.log.Warn("event publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
