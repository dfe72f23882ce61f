package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkMode is where the work happens.
type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

// JobStatus is the publication state of a posting. Closed jobs accept no new matches.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

// JobSource distinguishes postings created on the platform from postings
// imported from external boards. External jobs route candidates off-platform
// once they mark themselves applied.
type JobSource string

const (
	JobSourceInternal JobSource = "internal"
	JobSourceExternal JobSource = "external"
)

// JobPosting is a vacancy owned by a hiring organization.
type JobPosting struct {
	ID             uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	OrgID          string      `gorm:"size:64;not null;index" json:"org_id"`
	Title          string      `gorm:"size:255;not null" json:"title"`
	Company        string      `gorm:"size:255;not null" json:"company"`
	Description    string      `gorm:"type:text" json:"description"`
	RequiredSkills StringSet   `gorm:"type:json;not null" json:"required_skills"`
	Location       string      `gorm:"size:255" json:"location"`
	WorkMode       WorkMode    `gorm:"size:16;default:'onsite'" json:"work_mode"`
	Level          Level       `gorm:"size:16" json:"level"`
	SalaryMin      *int64      `json:"salary_min,omitempty"`
	SalaryMax      *int64      `json:"salary_max,omitempty"`
	Status         JobStatus   `gorm:"size:16;default:'active'" json:"status"`
	Source         JobSource   `gorm:"size:16;default:'internal'" json:"source"`
	Exam           *ExamConfig `gorm:"type:json" json:"exam,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// HasExam reports whether applicants must pass an assessment before the
// application is accepted.
func (j *JobPosting) HasExam() bool {
	return j.Exam != nil && len(j.Exam.Questions) > 0
}

// ExamConfig describes the optional per-job assessment. Stored as a JSON
// column on the posting, like a grading rubric.
type ExamConfig struct {
	Questions        []ExamQuestion `json:"questions"`
	TimeLimitMinutes int            `json:"time_limit_minutes,omitempty"`
	PassingScore     float64        `json:"passing_score"`
	AllowRetakes     bool           `json:"allow_retakes"`
}

// ExamQuestion is a single multiple-choice question. Weight defaults to 1
// when zero so plain percentage grading needs no explicit weights.
type ExamQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
	Correct int      `json:"correct"`
	Weight  float64  `json:"weight,omitempty"`
}

// Value implements driver.Valuer so gorm persists the config as a JSON column.
func (c *ExamConfig) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *ExamConfig) Scan(src any) error {
	if src == nil {
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("exam config: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, c)
}
