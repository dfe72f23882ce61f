package service

import (
	"context"

	"github.com/google/uuid"

	"jobmatch/domain"
	"jobmatch/ranking"
	"jobmatch/store"
)

// RankingService orders a job's matches for the hiring-manager queue. It is
// read-only: the result is a ranking over a snapshot of the matches, not a
// linearizable view.
type RankingService struct {
	store store.Store
}

// NewRankingService wires a RankingService.
func NewRankingService(st store.Store) *RankingService {
	return &RankingService{store: st}
}

// RankCandidates returns the job's matches ordered by score descending with
// earlier-created matches first among ties. Rejected matches are excluded
// unless includeRejected is set. A job with no matches yields an empty list.
func (s *RankingService) RankCandidates(ctx context.Context, jobID uuid.UUID, includeRejected bool) ([]domain.Match, error) {
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatchesByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(matches, includeRejected), nil
}
