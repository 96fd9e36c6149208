package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/healthsense/healthsense/internal/types"
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// New creates a new SQLite storage backend
func New(path string) (*SQLiteStorage, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// WAL mode for better concurrency between CLI and serve mode
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SaveReading inserts one measurement row
func (s *SQLiteStorage) SaveReading(ctx context.Context, reading *types.Reading) error {
	if reading == nil {
		return fmt.Errorf("reading cannot be nil")
	}
	if reading.Metric == "" {
		return fmt.Errorf("reading metric cannot be empty")
	}
	recordedAt := reading.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (metric, value, unit, recorded_at)
		VALUES (?, ?, ?, ?)
	`, reading.Metric, reading.Value, reading.Unit, recordedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

// GetReadings returns one metric's readings since the given time, oldest first
func (s *SQLiteStorage) GetReadings(ctx context.Context, metric string, since time.Time) ([]*types.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric, value, unit, recorded_at
		FROM readings
		WHERE metric = ? AND recorded_at >= ?
		ORDER BY recorded_at ASC
	`, metric, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// GetReadingsSince returns all readings since the given time, oldest first
func (s *SQLiteStorage) GetReadingsSince(ctx context.Context, since time.Time) ([]*types.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric, value, unit, recorded_at
		FROM readings
		WHERE recorded_at >= ?
		ORDER BY recorded_at ASC
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// GetLatestReadings returns the most recent reading per metric
func (s *SQLiteStorage) GetLatestReadings(ctx context.Context) (map[string]*types.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.metric, r.value, r.unit, r.recorded_at
		FROM readings r
		INNER JOIN (
			SELECT metric, MAX(recorded_at) AS latest
			FROM readings
			GROUP BY metric
		) m ON r.metric = m.metric AND r.recorded_at = m.latest
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest readings: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]*types.Reading)
	for rows.Next() {
		var r types.Reading
		if err := rows.Scan(&r.Metric, &r.Value, &r.Unit, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		latest[r.Metric] = &r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return latest, nil
}

func scanReadings(rows *sql.Rows) ([]*types.Reading, error) {
	var readings []*types.Reading
	for rows.Next() {
		var r types.Reading
		if err := rows.Scan(&r.Metric, &r.Value, &r.Unit, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return readings, nil
}

// SaveAlerts replaces the stored alert list with the given one.
// The in-memory list is canonical after a merge; persistence mirrors it.
func (s *SQLiteStorage) SaveAlerts(ctx context.Context, alerts []types.Alert) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM alerts`); err != nil {
		return fmt.Errorf("failed to clear alerts: %w", err)
	}

	// created_at encodes list order so reads come back in merge order
	base := time.Now().UTC()
	for i, a := range alerts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO alerts (id, title, detail, timestamp, risk, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, a.ID, a.Title, a.Detail, a.Timestamp, string(a.Risk), base.Add(-time.Duration(i)*time.Millisecond))
		if err != nil {
			return fmt.Errorf("failed to save alert %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit alerts: %w", err)
	}
	return nil
}

// GetAlerts returns stored alerts, newest first
func (s *SQLiteStorage) GetAlerts(ctx context.Context, limit int) ([]types.Alert, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, detail, timestamp, risk
		FROM alerts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []types.Alert
	for rows.Next() {
		var a types.Alert
		var risk string
		if err := rows.Scan(&a.ID, &a.Title, &a.Detail, &a.Timestamp, &risk); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Risk = types.RiskLevel(risk)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}

// SetTrackedMetrics replaces the tracked extra-metric list
func (s *SQLiteStorage) SetTrackedMetrics(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tracked_metrics`); err != nil {
		return fmt.Errorf("failed to clear tracked metrics: %w", err)
	}
	for i, name := range names {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tracked_metrics (name, position) VALUES (?, ?)
		`, name, i)
		if err != nil {
			return fmt.Errorf("failed to save tracked metric %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tracked metrics: %w", err)
	}
	return nil
}

// GetTrackedMetrics returns the tracked extra-metric names in saved order
func (s *SQLiteStorage) GetTrackedMetrics(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM tracked_metrics ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked metrics: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tracked metric: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracked metrics: %w", err)
	}
	return names, nil
}

// GetSetting reads one settings value. Missing keys return "" without error.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting writes one settings value, overwriting any previous one
func (s *SQLiteStorage) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// CleanupReadings deletes readings older than retentionDays and returns
// the number of rows removed
func (s *SQLiteStorage) CleanupReadings(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retentionDays must be positive, got %d", retentionDays)
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	result, err := s.db.ExecContext(ctx, `DELETE FROM readings WHERE recorded_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup readings: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted readings: %w", err)
	}
	return int(deleted), nil
}

// VacuumDatabase reclaims space after cleanup
func (s *SQLiteStorage) VacuumDatabase(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
