// Package lifecycle defines the legal transitions of a match and who may
// trigger them. The rules are pure; persistence, concurrency control and the
// exam gate live in the service layer on top of this table.
package lifecycle

import (
	"jobmatch/domain"
)

// edge is one allowed move in the lifecycle graph.
type edge struct {
	from domain.MatchStatus
	to   domain.MatchStatus
}

// transitions maps every legal edge to the role allowed to trigger it.
// Rejection is employer-only and possible from any non-terminal state.
var transitions = map[edge]domain.Role{
	{domain.StatusPending, domain.StatusApplied}:     domain.RoleCandidate,
	{domain.StatusApplied, domain.StatusScreening}:   domain.RoleEmployer,
	{domain.StatusScreening, domain.StatusInterview}: domain.RoleEmployer,
	{domain.StatusInterview, domain.StatusHired}:     domain.RoleEmployer,
	{domain.StatusPending, domain.StatusRejected}:    domain.RoleEmployer,
	{domain.StatusApplied, domain.StatusRejected}:    domain.RoleEmployer,
	{domain.StatusScreening, domain.StatusRejected}:  domain.RoleEmployer,
	{domain.StatusInterview, domain.StatusRejected}:  domain.RoleEmployer,
}

// Check validates a requested transition against the edge set and the
// caller's role. It returns an InvalidTransitionError for illegal edges and
// ErrForbidden when the edge exists but belongs to the other role.
func Check(from, to domain.MatchStatus, role domain.Role) error {
	if !to.IsValid() {
		return &domain.InvalidTransitionError{From: from, To: to, Reason: "unknown target state"}
	}
	if from.IsTerminal() {
		return &domain.InvalidTransitionError{From: from, To: to, Reason: "state is terminal"}
	}
	allowed, ok := transitions[edge{from, to}]
	if !ok {
		return &domain.InvalidTransitionError{From: from, To: to}
	}
	if role != allowed {
		return domain.ErrForbidden
	}
	return nil
}

// CanTransition reports whether the edge exists for some role, ignoring who
// asks. Used for read-side checks.
func CanTransition(from, to domain.MatchStatus) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}

// TargetsFrom lists the states reachable from the given state, for API
// discoverability. Order is fixed.
func TargetsFrom(from domain.MatchStatus) []domain.MatchStatus {
	ordered := []domain.MatchStatus{
		domain.StatusApplied,
		domain.StatusScreening,
		domain.StatusInterview,
		domain.StatusHired,
		domain.StatusRejected,
	}
	var out []domain.MatchStatus
	for _, to := range ordered {
		if CanTransition(from, to) {
			out = append(out, to)
		}
	}
	return out
}
