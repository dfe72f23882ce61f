package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobmatch/domain"
)

func TestCreateMatch_ScoresAndStartsPending(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)

	m := f.createMatch(t, job, cand)
	if m.Status != domain.StatusPending {
		t.Fatalf("new match should be pending, got %s", m.Status)
	}
	if m.Score <= 0 || m.Score > 100 {
		t.Fatalf("score out of range: %.1f", m.Score)
	}
	if m.Explanation == "" {
		t.Fatal("expected a non-empty explanation")
	}
	if m.Version != 1 {
		t.Fatalf("new match should start at version 1, got %d", m.Version)
	}
	if !f.pub.saw(TopicMatchCreated) {
		t.Fatal("expected match.created event")
	}
}

func TestCreateMatch_IdempotentPerPair(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)

	first := f.createMatch(t, job, cand)
	second := f.createMatch(t, job, cand)
	if first.ID != second.ID {
		t.Fatalf("duplicate pair created a second match: %s vs %s", first.ID, second.ID)
	}

	all, err := f.store.ListMatchesByJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(all))
	}
}

func TestCreateMatch_ClosedJob(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, func(j *domain.JobPosting) { j.Status = domain.JobStatusClosed })
	cand := f.seedCandidate(t, nil)

	_, err := f.matches.CreateMatch(context.Background(), CreateMatchInput{JobID: job.ID, CandidateID: cand.ID})
	if !errors.Is(err, domain.ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
}

func TestCreateMatch_QuotaExhausted(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)

	_, err := f.matches.CreateMatch(context.Background(), CreateMatchInput{
		JobID: job.ID, CandidateID: cand.ID, QuotaExhausted: true,
	})
	if !errors.Is(err, domain.ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

func TestCreateMatch_UnknownJob(t *testing.T) {
	f := newFixture(t)
	cand := f.seedCandidate(t, nil)

	_, err := f.matches.CreateMatch(context.Background(), CreateMatchInput{
		JobID: uuid.New(), CandidateID: cand.ID,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransition_ApplyCreatesApplicationRecord(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	applied := f.advance(t, m, cand, domain.StatusApplied)
	if applied.Status != domain.StatusApplied {
		t.Fatalf("expected applied, got %s", applied.Status)
	}
	if applied.Version != 2 {
		t.Fatalf("version should increment to 2, got %d", applied.Version)
	}

	app, err := f.store.GetApplication(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("application record missing: %v", err)
	}
	if app.Status != applied.Status {
		t.Fatalf("application status %s diverges from match status %s", app.Status, applied.Status)
	}
	if app.AppliedAt.IsZero() {
		t.Fatal("applied timestamp not set")
	}
}

func TestTransition_FullHirePathKeepsRecordsConsistent(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	path := []domain.MatchStatus{
		domain.StatusApplied, domain.StatusScreening,
		domain.StatusInterview, domain.StatusHired,
	}
	current := m
	for _, to := range path {
		current = f.advance(t, current, cand, to)
		app, err := f.store.GetApplication(context.Background(), m.ID)
		if err != nil {
			t.Fatalf("application record missing at %s: %v", to, err)
		}
		if app.Status != current.Status {
			t.Fatalf("at %s: application says %s", current.Status, app.Status)
		}
	}
	if current.Version != int64(len(path))+1 {
		t.Fatalf("expected version %d after %d transitions, got %d", len(path)+1, len(path), current.Version)
	}
}

func TestTransition_IllegalEdgeLeavesStatusUnchanged(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	_, err := f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusInterview, Actor: employerActor,
	})
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("pending -> interview should be invalid, got %v", err)
	}

	reloaded, _ := f.store.GetMatch(context.Background(), m.ID)
	if reloaded.Status != domain.StatusPending || reloaded.Version != 1 {
		t.Fatalf("failed transition must not change state, got %s v%d", reloaded.Status, reloaded.Version)
	}
}

func TestTransition_WrongRoleForbidden(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	_, err := f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusApplied, Actor: employerActor,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employer applying should be forbidden, got %v", err)
	}
}

func TestTransition_OtherCandidateForbidden(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	other := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	_, err := f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusApplied, Actor: candidateActor(other),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("another candidate applying should be forbidden, got %v", err)
	}
}

func TestTransition_StaleVersionConflicts(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	// Two reviewers read version 1; the candidate applies in between.
	f.advance(t, m, cand, domain.StatusApplied)

	_, err := f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusRejected, Actor: employerActor, ExpectedVersion: 1,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale expected version should conflict, got %v", err)
	}
}

func TestTransition_TerminalIsImmutable(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)
	f.advance(t, m, cand, domain.StatusApplied)

	rejected, err := f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusRejected, Actor: employerActor,
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if !rejected.Status.IsTerminal() {
		t.Fatalf("rejected should be terminal")
	}

	_, err = f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusScreening, Actor: employerActor,
	})
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("transition out of rejected should be invalid, got %v", err)
	}
}

func TestTransition_ExternalJobStopsAtApplied(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, func(j *domain.JobPosting) { j.Source = domain.JobSourceExternal })
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	applied := f.advance(t, m, cand, domain.StatusApplied)
	if applied.Status != domain.StatusApplied {
		t.Fatalf("external job should still accept apply, got %s", applied.Status)
	}

	_, err := f.matches.Transition(context.Background(), TransitionInput{
		MatchID: m.ID, To: domain.StatusScreening, Actor: employerActor,
	})
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("external job should track no state beyond applied, got %v", err)
	}
}

func TestTransition_PublishesStatusChanged(t *testing.T) {
	f := newFixture(t)
	job := f.seedJob(t, nil)
	cand := f.seedCandidate(t, nil)
	m := f.createMatch(t, job, cand)

	f.advance(t, m, cand, domain.StatusApplied)
	if !f.pub.saw(TopicStatusChanged) {
		t.Fatal("expected match.status_changed event")
	}
}
