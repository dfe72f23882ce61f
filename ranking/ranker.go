// Package ranking orders the matches of a job for the hiring-manager view.
package ranking

import (
	"sort"

	"jobmatch/domain"
)

// Rank sorts matches by score descending, then by creation time ascending
// (first come wins among equals), then by ID so the order is a total order
// and repeated calls over unchanged data return the identical sequence.
// Rejected matches are dropped unless includeRejected is set. The input is
// not mutated; an empty input yields an empty, non-nil slice.
func Rank(matches []domain.Match, includeRejected bool) []domain.Match {
	out := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if !includeRejected && m.Status == domain.StatusRejected {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
