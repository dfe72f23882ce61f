// Package scoring computes the compatibility score between a candidate
// profile and a job posting. The function is a deterministic, explainable
// heuristic: same inputs always produce the same score and explanation.
package scoring

import (
	"fmt"
	"strings"

	"jobmatch/domain"
)

// Weights distributes the 0-100 score across the three factors. The three
// fields should sum to 100; New normalizes them when they do not.
type Weights struct {
	Skills     float64
	Location   float64
	Experience float64
}

// DefaultWeights favors skill overlap over situational factors.
func DefaultWeights() Weights {
	return Weights{Skills: 60, Location: 20, Experience: 20}
}

// Result is the outcome of a match computation. Explanation enumerates each
// factor's contribution and is rendered verbatim by callers.
type Result struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Engine scores job-candidate pairs. It is stateless and safe for concurrent use.
type Engine struct {
	weights Weights
}

// New creates an Engine. Zero or invalid weights fall back to DefaultWeights;
// otherwise they are scaled to sum to 100.
func New(w Weights) *Engine {
	total := w.Skills + w.Location + w.Experience
	if total <= 0 {
		w = DefaultWeights()
	} else if total != 100 {
		w.Skills = w.Skills / total * 100
		w.Location = w.Location / total * 100
		w.Experience = w.Experience / total * 100
	}
	return &Engine{weights: w}
}

// ComputeMatch scores the pair. It never fails on incomplete-but-present
// inputs: missing skills or levels degrade the relevant factor to a low
// contribution with an explanation line noting the gap.
func (e *Engine) ComputeMatch(job *domain.JobPosting, cand *domain.CandidateProfile) Result {
	var lines []string

	skills, line := skillFactor(job.RequiredSkills.Normalize(), cand.Skills.Normalize())
	lines = append(lines, line)

	location, line := locationFactor(job, cand)
	lines = append(lines, line)

	experience, line := experienceFactor(job.Level, cand.Level)
	lines = append(lines, line)

	raw := skills*e.weights.Skills + location*e.weights.Location + experience*e.weights.Experience
	score := round1(raw)

	return Result{
		Score:       score,
		Explanation: strings.Join(lines, "; "),
	}
}

// skillFactor returns the job-side skill coverage in [0,1]. It is weighted
// toward the posting's required set rather than plain Jaccard so that extra
// candidate skills never count against the match.
func skillFactor(required, have domain.StringSet) (float64, string) {
	if len(required) == 0 || len(have) == 0 {
		return 0, "skills: insufficient data, one side lists no skills"
	}

	var matched, missing []string
	for _, s := range required {
		if have.Contains(s) {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	coverage := float64(len(matched)) / float64(len(required))
	switch {
	case len(missing) == 0:
		return coverage, fmt.Sprintf("skills: all %d required skills matched (%s)",
			len(required), strings.Join(matched, ", "))
	case len(matched) == 0:
		return coverage, fmt.Sprintf("skills: no required skills matched (missing: %s)",
			strings.Join(missing, ", "))
	default:
		return coverage, fmt.Sprintf("skills: %d/%d required skills matched (%s), missing %s",
			len(matched), len(required), strings.Join(matched, ", "), strings.Join(missing, ", "))
	}
}

func locationFactor(job *domain.JobPosting, cand *domain.CandidateProfile) (float64, string) {
	sameCity := job.Location != "" && strings.EqualFold(strings.TrimSpace(job.Location), strings.TrimSpace(cand.Location))

	switch job.WorkMode {
	case domain.WorkModeRemote:
		return 1, "location: remote role, no location constraint"
	case domain.WorkModeHybrid:
		if sameCity {
			return 1, fmt.Sprintf("location: hybrid role in candidate's location (%s)", job.Location)
		}
		if cand.OpenToRemote {
			return 0.5, "location: hybrid role outside candidate's location, partial credit for remote flexibility"
		}
		return 0, "location: hybrid role outside candidate's location"
	default: // onsite
		if sameCity {
			return 1, fmt.Sprintf("location: onsite role in candidate's location (%s)", job.Location)
		}
		if cand.Location == "" || job.Location == "" {
			return 0.25, "location: insufficient data to compare locations"
		}
		return 0, fmt.Sprintf("location: onsite role in %s, candidate is in %s", job.Location, cand.Location)
	}
}

// experienceFactor penalizes distance from the target level non-linearly,
// with underqualification costing more than overqualification.
func experienceFactor(target, have domain.Level) (float64, string) {
	tr, hr := target.Rank(), have.Rank()
	if tr < 0 || hr < 0 {
		return 0.5, "experience: insufficient data to compare levels"
	}

	diff := hr - tr
	switch {
	case diff == 0:
		return 1, fmt.Sprintf("experience: candidate level %s matches the target", have)
	case diff == -1:
		return 0.5, fmt.Sprintf("experience: candidate is one level below the target (%s vs %s)", have, target)
	case diff <= -2:
		return 0.1, fmt.Sprintf("experience: candidate is %d levels below the target (%s vs %s)", -diff, have, target)
	case diff == 1:
		return 0.8, fmt.Sprintf("experience: candidate is one level above the target (%s vs %s)", have, target)
	case diff == 2:
		return 0.55, fmt.Sprintf("experience: candidate is two levels above the target (%s vs %s)", have, target)
	default:
		return 0.35, fmt.Sprintf("experience: candidate is %d levels above the target (%s vs %s)", diff, have, target)
	}
}

// round1 rounds to one decimal, matching the keyword scorer convention.
func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
