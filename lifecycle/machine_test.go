package lifecycle

import (
	"errors"
	"testing"

	"jobmatch/domain"
)

func TestCheck_LegalEdges(t *testing.T) {
	cases := []struct {
		from, to domain.MatchStatus
		role     domain.Role
	}{
		{domain.StatusPending, domain.StatusApplied, domain.RoleCandidate},
		{domain.StatusApplied, domain.StatusScreening, domain.RoleEmployer},
		{domain.StatusScreening, domain.StatusInterview, domain.RoleEmployer},
		{domain.StatusInterview, domain.StatusHired, domain.RoleEmployer},
		{domain.StatusPending, domain.StatusRejected, domain.RoleEmployer},
		{domain.StatusApplied, domain.StatusRejected, domain.RoleEmployer},
		{domain.StatusScreening, domain.StatusRejected, domain.RoleEmployer},
		{domain.StatusInterview, domain.StatusRejected, domain.RoleEmployer},
	}
	for _, tc := range cases {
		if err := Check(tc.from, tc.to, tc.role); err != nil {
			t.Errorf("%s -> %s by %s should be legal: %v", tc.from, tc.to, tc.role, err)
		}
	}
}

func TestCheck_IllegalEdges(t *testing.T) {
	all := []domain.MatchStatus{
		domain.StatusPending, domain.StatusApplied, domain.StatusScreening,
		domain.StatusInterview, domain.StatusHired, domain.StatusRejected,
	}
	for _, from := range all {
		for _, to := range all {
			if CanTransition(from, to) {
				continue
			}
			err := Check(from, to, domain.RoleEmployer)
			if err == nil {
				t.Errorf("%s -> %s should be rejected", from, to)
				continue
			}
			var it *domain.InvalidTransitionError
			if !errors.As(err, &it) {
				t.Errorf("%s -> %s: expected InvalidTransitionError, got %v", from, to, err)
				continue
			}
			if it.From != from || it.To != to {
				t.Errorf("error should identify current and requested state, got %+v", it)
			}
		}
	}
}

func TestCheck_TerminalStatesAreImmutable(t *testing.T) {
	targets := []domain.MatchStatus{
		domain.StatusPending, domain.StatusApplied, domain.StatusScreening,
		domain.StatusInterview, domain.StatusHired, domain.StatusRejected,
	}
	for _, from := range []domain.MatchStatus{domain.StatusHired, domain.StatusRejected} {
		for _, to := range targets {
			if err := Check(from, to, domain.RoleEmployer); !domain.IsInvalidTransition(err) {
				t.Errorf("out of terminal %s -> %s: expected InvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestCheck_RoleEnforcement(t *testing.T) {
	// Applying is the candidate's move.
	if err := Check(domain.StatusPending, domain.StatusApplied, domain.RoleEmployer); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("employer applying should be forbidden, got %v", err)
	}
	// Review moves and rejection belong to the hiring organization.
	if err := Check(domain.StatusApplied, domain.StatusScreening, domain.RoleCandidate); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("candidate advancing to screening should be forbidden, got %v", err)
	}
	if err := Check(domain.StatusApplied, domain.StatusRejected, domain.RoleCandidate); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("candidate rejecting should be forbidden, got %v", err)
	}
}

func TestCheck_UnknownTarget(t *testing.T) {
	err := Check(domain.StatusPending, domain.MatchStatus("archived"), domain.RoleEmployer)
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("unknown target should be invalid, got %v", err)
	}
}

func TestTargetsFrom(t *testing.T) {
	got := TargetsFrom(domain.StatusScreening)
	want := []domain.MatchStatus{domain.StatusInterview, domain.StatusRejected}
	if len(got) != len(want) {
		t.Fatalf("targets from screening: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("targets from screening: got %v, want %v", got, want)
		}
	}

	if targets := TargetsFrom(domain.StatusHired); len(targets) != 0 {
		t.Fatalf("terminal state should have no targets, got %v", targets)
	}
}
