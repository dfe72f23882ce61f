package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobmatch/domain"
)

// Mem is an in-memory Store guarded by a single mutex. It backs the test
// suite and local runs without a MySQL DSN. All returned values are copies.
type Mem struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]domain.JobPosting
	candidates map[uuid.UUID]domain.CandidateProfile
	matches    map[uuid.UUID]domain.Match
	apps       map[uuid.UUID]domain.ApplicationRecord // keyed by match ID
	attempts   map[uuid.UUID][]domain.ExamAttempt     // keyed by match ID, append order
	rooms      map[uuid.UUID]domain.ChatRoom          // keyed by match ID
}

var _ Store = (*Mem)(nil)

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{
		jobs:       make(map[uuid.UUID]domain.JobPosting),
		candidates: make(map[uuid.UUID]domain.CandidateProfile),
		matches:    make(map[uuid.UUID]domain.Match),
		apps:       make(map[uuid.UUID]domain.ApplicationRecord),
		attempts:   make(map[uuid.UUID][]domain.ExamAttempt),
		rooms:      make(map[uuid.UUID]domain.ChatRoom),
	}
}

func (s *Mem) CreateJob(_ context.Context, job *domain.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

func (s *Mem) GetJob(_ context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.NewNotFound("job", id.String())
	}
	return &j, nil
}

func (s *Mem) CreateCandidate(_ context.Context, cand *domain.CandidateProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[cand.ID] = *cand
	return nil
}

func (s *Mem) GetCandidate(_ context.Context, id uuid.UUID) (*domain.CandidateProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, domain.NewNotFound("candidate", id.String())
	}
	return &c, nil
}

func (s *Mem) CreateMatch(_ context.Context, m *domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.matches {
		if existing.JobID == m.JobID && existing.CandidateID == m.CandidateID {
			return domain.ErrConflict
		}
	}
	s.matches[m.ID] = *m
	return nil
}

func (s *Mem) GetMatch(_ context.Context, id uuid.UUID) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, domain.NewNotFound("match", id.String())
	}
	return &m, nil
}

func (s *Mem) GetMatchByPair(_ context.Context, jobID, candidateID uuid.UUID) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.matches {
		if m.JobID == jobID && m.CandidateID == candidateID {
			found := m
			return &found, nil
		}
	}
	return nil, domain.NewNotFound("match", jobID.String()+"/"+candidateID.String())
}

func (s *Mem) ListMatchesByJob(_ context.Context, jobID uuid.UUID) ([]domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Match, 0)
	for _, m := range s.matches {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Mem) ApplyTransition(_ context.Context, matchID uuid.UUID, expectedVersion int64, to domain.MatchStatus, at time.Time, app *domain.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return domain.NewNotFound("match", matchID.String())
	}
	if m.Version != expectedVersion {
		return domain.ErrConflict
	}
	m.Status = to
	m.Version++
	m.StatusChangedAt = at
	s.matches[matchID] = m

	if app != nil {
		app.Status = to
		app.UpdatedAt = at
		s.apps[matchID] = *app
	} else if existing, ok := s.apps[matchID]; ok {
		existing.Status = to
		existing.UpdatedAt = at
		s.apps[matchID] = existing
	}
	return nil
}

func (s *Mem) GetApplication(_ context.Context, matchID uuid.UUID) (*domain.ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[matchID]
	if !ok {
		return nil, domain.NewNotFound("application", matchID.String())
	}
	return &a, nil
}

func (s *Mem) CreateAttempt(_ context.Context, a *domain.ExamAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[a.MatchID] = append(s.attempts[a.MatchID], *a)
	return nil
}

func (s *Mem) LatestAttempt(_ context.Context, matchID uuid.UUID) (*domain.ExamAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.attempts[matchID]
	if len(list) == 0 {
		return nil, domain.NewNotFound("exam attempt", matchID.String())
	}
	latest := list[len(list)-1]
	return &latest, nil
}

func (s *Mem) CreateRoom(_ context.Context, r *domain.ChatRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[r.MatchID]; ok {
		return domain.ErrConflict
	}
	s.rooms[r.MatchID] = *r
	return nil
}

func (s *Mem) GetRoomByMatch(_ context.Context, matchID uuid.UUID) (*domain.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[matchID]
	if !ok {
		return nil, domain.NewNotFound("chat room", matchID.String())
	}
	return &r, nil
}

func (s *Mem) CloseRoom(_ context.Context, matchID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[matchID]
	if !ok || !r.Open {
		return nil
	}
	r.Open = false
	closed := at
	r.ClosedAt = &closed
	s.rooms[matchID] = r
	return nil
}
