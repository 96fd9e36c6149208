package storage

import (
	"context"
	"time"

	"github.com/healthsense/healthsense/internal/storage/sqlite"
	"github.com/healthsense/healthsense/internal/types"
)

// Storage defines the interface for health data persistence backends
type Storage interface {
	// Readings - raw metric measurements as recorded
	SaveReading(ctx context.Context, reading *types.Reading) error
	GetReadings(ctx context.Context, metric string, since time.Time) ([]*types.Reading, error)
	GetReadingsSince(ctx context.Context, since time.Time) ([]*types.Reading, error)
	GetLatestReadings(ctx context.Context) (map[string]*types.Reading, error)

	// Alerts
	SaveAlerts(ctx context.Context, alerts []types.Alert) error
	GetAlerts(ctx context.Context, limit int) ([]types.Alert, error)

	// Tracked extra metrics (beyond the core vitals)
	SetTrackedMetrics(ctx context.Context, names []string) error
	GetTrackedMetrics(ctx context.Context) ([]string, error)

	// Settings - small key/value store for profile and app state
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Maintenance
	CleanupReadings(ctx context.Context, retentionDays int) (int, error)
	VacuumDatabase(ctx context.Context) error

	// Lifecycle
	Close() error
}

// Setting keys used by the profile and onboarding flow.
const (
	KeyOnboardingComplete = "onboardingComplete"
	KeyUserName           = "userName"
	KeyUserAge            = "userAge"
	KeyUserGender         = "userGender"
	KeyUserPhoto          = "userPhoto"
)

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: ".healthsense/health.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path: ".healthsense/health.db",
	}
}

// NewStorage creates a new SQLite storage backend.
// The ctx parameter is currently unused but kept for API consistency.
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = ".healthsense/health.db"
	}
	return sqlite.New(cfg.Path)
}
