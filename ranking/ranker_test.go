package ranking

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"jobmatch/domain"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func match(score float64, createdOffset time.Duration, status domain.MatchStatus) domain.Match {
	return domain.Match{
		ID:        uuid.New(),
		JobID:     uuid.Nil,
		Score:     score,
		Status:    status,
		CreatedAt: base.Add(createdOffset),
	}
}

func TestRank_ScoreDescending(t *testing.T) {
	in := []domain.Match{
		match(40, 0, domain.StatusApplied),
		match(90, 0, domain.StatusApplied),
		match(65, 0, domain.StatusScreening),
	}
	out := Rank(in, false)
	if len(out) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Fatalf("position %d out of order: %.1f after %.1f", i, out[i].Score, out[i-1].Score)
		}
	}
}

func TestRank_TieBreakByCreatedAt(t *testing.T) {
	later := match(80, 2*time.Hour, domain.StatusApplied)
	earlier := match(80, time.Hour, domain.StatusApplied)

	out := Rank([]domain.Match{later, earlier}, false)
	if out[0].ID != earlier.ID {
		t.Fatal("the earlier match should rank first among equal scores")
	}
}

func TestRank_StableAcrossCalls(t *testing.T) {
	in := []domain.Match{
		match(80, time.Hour, domain.StatusApplied),
		match(80, time.Hour, domain.StatusApplied), // identical score and time, ID decides
		match(80, 2*time.Hour, domain.StatusApplied),
		match(95, 0, domain.StatusScreening),
	}
	first := Rank(in, false)
	for n := 0; n < 5; n++ {
		again := Rank(in, false)
		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("run %d: order differs at position %d", n, i)
			}
		}
	}
}

func TestRank_ExcludesRejectedByDefault(t *testing.T) {
	rejected := match(99, 0, domain.StatusRejected)
	kept := match(50, 0, domain.StatusApplied)

	out := Rank([]domain.Match{rejected, kept}, false)
	if len(out) != 1 || out[0].ID != kept.ID {
		t.Fatalf("rejected match should be excluded, got %d entries", len(out))
	}

	all := Rank([]domain.Match{rejected, kept}, true)
	if len(all) != 2 || all[0].ID != rejected.ID {
		t.Fatalf("show-all mode should include rejected, sorted the same way")
	}
}

func TestRank_EmptyInput(t *testing.T) {
	out := Rank(nil, false)
	if out == nil || len(out) != 0 {
		t.Fatalf("empty input should yield an empty list, got %v", out)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	a := match(10, 0, domain.StatusApplied)
	b := match(90, 0, domain.StatusApplied)
	in := []domain.Match{a, b}

	Rank(in, false)
	if in[0].ID != a.ID || in[1].ID != b.ID {
		t.Fatal("input slice order changed")
	}
}
