package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobmatch/domain"
	"jobmatch/exam"
	"jobmatch/store"
)

// ExamService grades assessment submissions and unblocks the deferred
// pending -> applied transition when the candidate passes.
type ExamService struct {
	store   store.Store
	matches *MatchService
	pub     Publisher
	log     *zap.Logger
	now     func() time.Time
}

// NewExamService wires an ExamService.
func NewExamService(st store.Store, matches *MatchService, pub Publisher, log *zap.Logger) *ExamService {
	if pub == nil {
		pub = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExamService{store: st, matches: matches, pub: pub, log: log, now: time.Now}
}

// SubmitExamInput is one exam submission.
type SubmitExamInput struct {
	MatchID     uuid.UUID
	CandidateID uuid.UUID
	Answers     domain.AnswerSheet
}

// SubmitExam grades the answers against the job's exam configuration and
// records an immutable attempt. Re-submission fails with AlreadySubmitted
// unless the job allows retakes, in which case the newest attempt becomes the
// one that counts. A passing attempt on a pending match advances it to
// applied in the same call.
func (s *ExamService) SubmitExam(ctx context.Context, in SubmitExamInput) (*domain.ExamAttempt, error) {
	m, err := s.store.GetMatch(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if m.CandidateID != in.CandidateID {
		return nil, fmt.Errorf("submit exam for match %s: %w", m.ID, domain.ErrForbidden)
	}

	job, err := s.store.GetJob(ctx, m.JobID)
	if err != nil {
		return nil, err
	}
	if !job.HasExam() {
		return nil, fmt.Errorf("job %s: %w", job.ID, domain.ErrJobHasNoExam)
	}

	if _, err := s.store.LatestAttempt(ctx, m.ID); err == nil {
		if !job.Exam.AllowRetakes {
			return nil, fmt.Errorf("match %s: %w", m.ID, domain.ErrAlreadySubmitted)
		}
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	score, passed := exam.Grade(job.Exam, in.Answers)
	attempt := &domain.ExamAttempt{
		ID:          uuid.New(),
		MatchID:     m.ID,
		CandidateID: in.CandidateID,
		Answers:     in.Answers,
		Score:       score,
		Passed:      passed,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.CreateAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record exam attempt: %w", err)
	}

	if err := s.pub.Publish(ctx, TopicExamGraded, ExamGradedEvent{
		MatchID: m.ID, AttemptID: attempt.ID, Score: score, Passed: passed,
	}); err != nil {
		s.log.Warn("event publish failed", zap.String("topic", TopicExamGraded), zap.Error(err))
	}

	if passed && m.Status == domain.StatusPending {
		_, err := s.matches.Transition(ctx, TransitionInput{
			MatchID: m.ID,
			To:      domain.StatusApplied,
			Actor:   domain.Actor{ID: in.CandidateID.String(), Role: domain.RoleCandidate},
		})
		if err != nil {
			// The attempt is recorded either way; the candidate can retry the
			// apply step once the concurrent change settles.
			s.log.Warn("deferred apply after passing exam failed",
				zap.String("match_id", m.ID.String()), zap.Error(err))
		}
	}

	return attempt, nil
}
