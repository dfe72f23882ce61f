package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobmatch/domain"
	"jobmatch/store"
)

// GormStore is the MySQL-backed implementation of the store ports.
// Optimistic concurrency rides on the match version column: every status
// update carries `WHERE version = ?` and bumps it by one.
type GormStore struct {
	db *gorm.DB
}

var _ store.Store = (*GormStore)(nil)

// NewGormStore wraps a connected gorm handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func newUUID() uuid.UUID { return uuid.New() }

func (s *GormStore) CreateJob(ctx context.Context, job *domain.JobPosting) error {
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s *GormStore) GetJob(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	var job domain.JobPosting
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err, "job", id.String())
	}
	return &job, nil
}

func (s *GormStore) CreateCandidate(ctx context.Context, cand *domain.CandidateProfile) error {
	if err := s.db.WithContext(ctx).Create(cand).Error; err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (s *GormStore) GetCandidate(ctx context.Context, id uuid.UUID) (*domain.CandidateProfile, error) {
	var cand domain.CandidateProfile
	if err := s.db.WithContext(ctx).First(&cand, "id = ?", id).Error; err != nil {
		return nil, translate(err, "candidate", id.String())
	}
	return &cand, nil
}

func (s *GormStore) CreateMatch(ctx context.Context, m *domain.Match) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

func (s *GormStore) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var m domain.Match
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, "match", id.String())
	}
	return &m, nil
}

func (s *GormStore) GetMatchByPair(ctx context.Context, jobID, candidateID uuid.UUID) (*domain.Match, error) {
	var m domain.Match
	err := s.db.WithContext(ctx).
		First(&m, "job_id = ? AND candidate_id = ?", jobID, candidateID).Error
	if err != nil {
		return nil, translate(err, "match", jobID.String()+"/"+candidateID.String())
	}
	return &m, nil
}

func (s *GormStore) ListMatchesByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Match, error) {
	var matches []domain.Match
	if err := s.db.WithContext(ctx).Find(&matches, "job_id = ?", jobID).Error; err != nil {
		return nil, fmt.Errorf("list matches for job %s: %w", jobID, err)
	}
	return matches, nil
}

func (s *GormStore) ApplyTransition(ctx context.Context, matchID uuid.UUID, expectedVersion int64, to domain.MatchStatus, at time.Time, app *domain.ApplicationRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Match{}).
			Where("id = ? AND version = ?", matchID, expectedVersion).
			Updates(map[string]any{
				"status":            to,
				"version":           expectedVersion + 1,
				"status_changed_at": at,
			})
		if res.Error != nil {
			return fmt.Errorf("update match %s: %w", matchID, res.Error)
		}
		if res.RowsAffected == 0 {
			// Either the match is gone or the version moved under us.
			var exists int64
			if err := tx.Model(&domain.Match{}).Where("id = ?", matchID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return domain.NewNotFound("match", matchID.String())
			}
			return domain.ErrConflict
		}

		if app != nil {
			app.Status = to
			app.UpdatedAt = at
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "match_id"}},
				DoUpdates: clause.Assignments(map[string]any{"status": to, "updated_at": at}),
			}).Create(app).Error
			if err != nil {
				return fmt.Errorf("upsert application for match %s: %w", matchID, err)
			}
		} else {
			err := tx.Model(&domain.ApplicationRecord{}).
				Where("match_id = ?", matchID).
				Updates(map[string]any{"status": to, "updated_at": at}).Error
			if err != nil {
				return fmt.Errorf("sync application for match %s: %w", matchID, err)
			}
		}
		return nil
	})
}

func (s *GormStore) GetApplication(ctx context.Context, matchID uuid.UUID) (*domain.ApplicationRecord, error) {
	var a domain.ApplicationRecord
	if err := s.db.WithContext(ctx).First(&a, "match_id = ?", matchID).Error; err != nil {
		return nil, translate(err, "application", matchID.String())
	}
	return &a, nil
}

func (s *GormStore) CreateAttempt(ctx context.Context, a *domain.ExamAttempt) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create exam attempt: %w", err)
	}
	return nil
}

func (s *GormStore) LatestAttempt(ctx context.Context, matchID uuid.UUID) (*domain.ExamAttempt, error) {
	var a domain.ExamAttempt
	err := s.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("submitted_at DESC, id DESC").
		First(&a).Error
	if err != nil {
		return nil, translate(err, "exam attempt", matchID.String())
	}
	return &a, nil
}

func (s *GormStore) CreateRoom(ctx context.Context, r *domain.ChatRoom) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create chat room: %w", err)
	}
	return nil
}

func (s *GormStore) GetRoomByMatch(ctx context.Context, matchID uuid.UUID) (*domain.ChatRoom, error) {
	var r domain.ChatRoom
	if err := s.db.WithContext(ctx).First(&r, "match_id = ?", matchID).Error; err != nil {
		return nil, translate(err, "chat room", matchID.String())
	}
	return &r, nil
}

func (s *GormStore) CloseRoom(ctx context.Context, matchID uuid.UUID, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&domain.ChatRoom{}).
		Where("match_id = ? AND open = ?", matchID, true).
		Updates(map[string]any{"open": false, "closed_at": at}).Error
	if err != nil {
		return fmt.Errorf("close chat room for match %s: %w", matchID, err)
	}
	return nil
}

// translate maps gorm's not-found to the domain taxonomy.
func translate(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(entity, id)
	}
	return fmt.Errorf("load %s %s: %w", entity, id, err)
}
