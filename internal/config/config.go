// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Membership mutation policies. The route history of the original app
// flip-flopped between leader-only and any-member for add/remove, so the
// choice is an explicit per-action configuration rather than a baked-in rule.
const (
	PolicyLeaderOnly = "leader_only"
	PolicyAnyMember  = "any_member"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// CAS single sign-on
	CASBaseURL string `mapstructure:"CAS_BASE_URL"`

	// Session Configuration
	SessionCookieName string        `mapstructure:"SESSION_COOKIE_NAME"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL_HOURS"`

	// Group membership mutation policies: "leader_only" or "any_member".
	AddMemberPolicy    string `mapstructure:"GROUP_ADD_MEMBER_POLICY"`
	RemoveMemberPolicy string `mapstructure:"GROUP_REMOVE_MEMBER_POLICY"`

	// Scheduled-meal input: naive local timestamps are interpreted in this
	// fixed timezone before storage. Never guessed per-request.
	MealSourceTimezone string `mapstructure:"MEAL_SOURCE_TIMEZONE"`

	// Cron Jobs
	SessionCleanupJobSchedule string `mapstructure:"SESSION_CLEANUP_JOB_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "tigerbites_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	// The reference deployment runs on a hosting tier that caps connections,
	// so the pool stays small and access serializes under load.
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_MAX_OPEN_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CAS_BASE_URL", "https://fed.princeton.edu/cas/")

	v.SetDefault("SESSION_COOKIE_NAME", "tb_session")
	v.SetDefault("SESSION_TTL_HOURS", 24)

	v.SetDefault("GROUP_ADD_MEMBER_POLICY", PolicyAnyMember)
	v.SetDefault("GROUP_REMOVE_MEMBER_POLICY", PolicyAnyMember)

	v.SetDefault("MEAL_SOURCE_TIMEZONE", "America/New_York")

	v.SetDefault("SESSION_CLEANUP_JOB_SCHEDULE", "@daily")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.SessionTTL = time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour

	// GORM DSN built from the individual DB_* params; DB_SOURCE env remains
	// available for migration tooling.
	cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)

	if err := validatePolicy(cfg.AddMemberPolicy); err != nil {
		return nil, fmt.Errorf("GROUP_ADD_MEMBER_POLICY: %w", err)
	}
	if err := validatePolicy(cfg.RemoveMemberPolicy); err != nil {
		return nil, fmt.Errorf("GROUP_REMOVE_MEMBER_POLICY: %w", err)
	}
	if _, err := time.LoadLocation(cfg.MealSourceTimezone); err != nil {
		return nil, fmt.Errorf("MEAL_SOURCE_TIMEZONE %q is not a valid IANA zone: %w", cfg.MealSourceTimezone, err)
	}

	return &cfg, nil
}

func validatePolicy(policy string) error {
	switch policy {
	case PolicyLeaderOnly, PolicyAnyMember:
		return nil
	}
	return fmt.Errorf("must be %q or %q, got %q", PolicyLeaderOnly, PolicyAnyMember, policy)
}
