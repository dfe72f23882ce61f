// Package config loads runtime settings from the environment with sane
// defaults. All keys use the JOBMATCH_ prefix, e.g. JOBMATCH_HTTP_ADDR.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup.
type Config struct {
	HTTPAddr string
	MySQLDSN string
	AMQPURL  string
	LogJSON  bool
	LogDebug bool
	Scoring  ScoringConfig
}

// ScoringConfig tunes the factor weights of the match score. The three
// weights are normalized to sum to 100.
type ScoringConfig struct {
	SkillsWeight     float64
	LocationWeight   float64
	ExperienceWeight float64
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("JOBMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("mysql_dsn", "")
	v.SetDefault("amqp_url", "")
	v.SetDefault("log_json", false)
	v.SetDefault("log_debug", false)
	v.SetDefault("scoring.skills_weight", 60)
	v.SetDefault("scoring.location_weight", 20)
	v.SetDefault("scoring.experience_weight", 20)

	return &Config{
		HTTPAddr: v.GetString("http_addr"),
		MySQLDSN: v.GetString("mysql_dsn"),
		AMQPURL:  v.GetString("amqp_url"),
		LogJSON:  v.GetBool("log_json"),
		LogDebug: v.GetBool("log_debug"),
		Scoring: ScoringConfig{
			SkillsWeight:     v.GetFloat64("scoring.skills_weight"),
			LocationWeight:   v.GetFloat64("scoring.location_weight"),
			ExperienceWeight: v.GetFloat64("scoring.experience_weight"),
		},
	}
}
