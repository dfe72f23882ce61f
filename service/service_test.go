package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobmatch/domain"
	"jobmatch/scoring"
	"jobmatch/store"
)

// recordingPublisher captures published topics for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) saw(topic string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.topics {
		if t == topic {
			return true
		}
	}
	return false
}

// fixture wires the services over the in-memory store.
type fixture struct {
	store    *store.Mem
	pub      *recordingPublisher
	matches  *MatchService
	exams    *ExamService
	rankings *RankingService
	chats    *ChatService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMem()
	pub := &recordingPublisher{}
	matches := NewMatchService(st, scoring.New(scoring.DefaultWeights()), pub, nil)
	return &fixture{
		store:    st,
		pub:      pub,
		matches:  matches,
		exams:    NewExamService(st, matches, pub, nil),
		rankings: NewRankingService(st),
		chats:    NewChatService(st, pub, nil),
	}
}

func (f *fixture) seedJob(t *testing.T, mutate func(*domain.JobPosting)) *domain.JobPosting {
	t.Helper()
	now := time.Now().UTC()
	job := &domain.JobPosting{
		ID:             uuid.New(),
		OrgID:          "org-1",
		Title:          "Backend Engineer",
		Company:        "Acme",
		RequiredSkills: domain.StringSet{"go", "mysql"},
		Location:       "Berlin",
		WorkMode:       domain.WorkModeOnsite,
		Level:          domain.LevelMid,
		Status:         domain.JobStatusActive,
		Source:         domain.JobSourceInternal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if mutate != nil {
		mutate(job)
	}
	if err := f.store.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func (f *fixture) seedCandidate(t *testing.T, mutate func(*domain.CandidateProfile)) *domain.CandidateProfile {
	t.Helper()
	now := time.Now().UTC()
	cand := &domain.CandidateProfile{
		ID:        uuid.New(),
		Name:      "Dana Developer",
		Skills:    domain.StringSet{"go", "mysql", "docker"},
		Level:     domain.LevelMid,
		Location:  "Berlin",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(cand)
	}
	if err := f.store.CreateCandidate(context.Background(), cand); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return cand
}

func (f *fixture) createMatch(t *testing.T, job *domain.JobPosting, cand *domain.CandidateProfile) *domain.Match {
	t.Helper()
	m, err := f.matches.CreateMatch(context.Background(), CreateMatchInput{
		JobID:       job.ID,
		CandidateID: cand.ID,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return m
}

func candidateActor(cand *domain.CandidateProfile) domain.Actor {
	return domain.Actor{ID: cand.ID.String(), Role: domain.RoleCandidate}
}

var employerActor = domain.Actor{ID: "org-1", Role: domain.RoleEmployer}

// advance walks the match through the given states, alternating actors as
// the edge table requires.
func (f *fixture) advance(t *testing.T, m *domain.Match, cand *domain.CandidateProfile, states ...domain.MatchStatus) *domain.Match {
	t.Helper()
	current := m
	for _, to := range states {
		a := employerActor
		if to == domain.StatusApplied {
			a = candidateActor(cand)
		}
		next, err := f.matches.Transition(context.Background(), TransitionInput{
			MatchID: current.ID,
			To:      to,
			Actor:   a,
		})
		if err != nil {
			t.Fatalf("advance to %s: %v", to, err)
		}
		current = next
	}
	return current
}
