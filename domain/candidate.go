package domain

import (
	"time"

	"github.com/google/uuid"
)

// Level is a coarse experience band. Levels are ordered; Rank gives the
// position used for alignment scoring. Unknown levels rank -1.
type Level string

const (
	LevelIntern Level = "intern"
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
	LevelLead   Level = "lead"
)

var levelRanks = map[Level]int{
	LevelIntern: 0,
	LevelJunior: 1,
	LevelMid:    2,
	LevelSenior: 3,
	LevelLead:   4,
}

// Rank returns the ordinal of the level, or -1 when the level is unset or unknown.
func (l Level) Rank() int {
	if r, ok := levelRanks[l]; ok {
		return r
	}
	return -1
}

// IsValid reports whether the level is one of the known bands.
func (l Level) IsValid() bool {
	_, ok := levelRanks[l]
	return ok
}

// CandidateProfile is the candidate side of a match. Owned and mutated only
// by the candidate; the engine reads it.
type CandidateProfile struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255" json:"email"`
	Skills       StringSet `gorm:"type:json;not null" json:"skills"`
	Level        Level     `gorm:"size:16" json:"level"`
	Location     string    `gorm:"size:255" json:"location"`
	OpenToRemote bool      `json:"open_to_remote"`
	Links        StringSet `gorm:"type:json" json:"links"`
	Availability string    `gorm:"size:64" json:"availability"`
	ResumeRef    string    `gorm:"size:512" json:"resume_ref"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
