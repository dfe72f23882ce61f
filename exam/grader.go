// Package exam grades assessment submissions against a job's exam
// configuration. Grading is plain percentage of correct answers unless the
// configuration carries per-question weights.
package exam

import (
	"jobmatch/domain"
)

// Grade scores an answer sheet against the config and compares the result to
// the passing threshold. Unanswered or out-of-range answers count as wrong.
// Score is 0-100.
func Grade(cfg *domain.ExamConfig, answers domain.AnswerSheet) (score float64, passed bool) {
	if cfg == nil || len(cfg.Questions) == 0 {
		return 0, false
	}

	var total, earned float64
	for _, q := range cfg.Questions {
		w := q.Weight
		if w <= 0 {
			w = 1
		}
		total += w

		chosen, ok := answers[q.ID]
		if !ok || chosen < 0 || chosen >= len(q.Choices) {
			continue
		}
		if chosen == q.Correct {
			earned += w
		}
	}

	if total == 0 {
		return 0, false
	}
	score = round1(earned / total * 100)
	return score, score >= cfg.PassingScore
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
