package sqlite

const schema = `
-- Readings table: one row per recorded measurement
CREATE TABLE IF NOT EXISTS readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    metric TEXT NOT NULL CHECK(length(metric) <= 100),
    value TEXT NOT NULL,
    unit TEXT NOT NULL DEFAULT '',
    recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_readings_metric ON readings(metric);
CREATE INDEX IF NOT EXISTS idx_readings_recorded_at ON readings(recorded_at);

-- Alerts table: deduplicated health alerts, newest first by timestamp
CREATE TABLE IF NOT EXISTS alerts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    detail TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL DEFAULT '',
    risk TEXT NOT NULL DEFAULT 'low',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);

-- Tracked metrics: extra metrics the user chose to follow
CREATE TABLE IF NOT EXISTS tracked_metrics (
    name TEXT PRIMARY KEY,
    position INTEGER NOT NULL DEFAULT 0
);

-- Settings table: key/value store for profile and app state
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
