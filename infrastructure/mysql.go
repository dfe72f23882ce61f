package infrastructure

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"jobmatch/domain"
)

// NewMySQL opens the database, migrates the schema and seeds demo postings
// on an empty instance.
func NewMySQL(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.JobPosting{},
		&domain.CandidateProfile{},
		&domain.Match{},
		&domain.ApplicationRecord{},
		&domain.ExamAttempt{},
		&domain.ChatRoom{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	if err := seedJobs(db); err != nil {
		return nil, err
	}

	log.Info("connected to mysql and migrated schema")
	return db, nil
}

// seedJobs inserts a pair of demo postings so a fresh instance is
// exercisable. Skipped as soon as any posting exists.
func seedJobs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.JobPosting{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if count > 0 {
		return nil
	}

	jobs := []domain.JobPosting{
		{
			ID:             newUUID(),
			OrgID:          "org-demo",
			Title:          "Backend Engineer",
			Company:        "Acme",
			Description:    "Go services, MySQL, message queues.",
			RequiredSkills: domain.StringSet{"go", "mysql", "rabbitmq"},
			Location:       "Berlin",
			WorkMode:       domain.WorkModeHybrid,
			Level:          domain.LevelMid,
			Status:         domain.JobStatusActive,
			Source:         domain.JobSourceInternal,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		},
		{
			ID:             newUUID(),
			OrgID:          "org-demo",
			Title:          "Frontend Engineer",
			Company:        "Acme",
			Description:    "React product work with a screening quiz.",
			RequiredSkills: domain.StringSet{"react", "typescript"},
			Location:       "Berlin",
			WorkMode:       domain.WorkModeRemote,
			Level:          domain.LevelSenior,
			Status:         domain.JobStatusActive,
			Source:         domain.JobSourceInternal,
			Exam: &domain.ExamConfig{
				PassingScore: 70,
				Questions: []domain.ExamQuestion{
					{ID: "q1", Prompt: "What hook memoizes a computed value?", Choices: []string{"useMemo", "useEffect", "useRef"}, Correct: 0},
					{ID: "q2", Prompt: "Which type is assignable to unknown?", Choices: []string{"none", "any of them"}, Correct: 1},
				},
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := db.Create(&jobs).Error; err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}
	return nil
}
