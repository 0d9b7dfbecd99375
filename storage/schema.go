package storage

const (
	tableUsers    = "users"
	tableEvents   = "presence_events"
	tableSettings = "settings"

	settingSessionTimeout = "session_timeout_minutes"

	// maxInArgs bounds the number of user IDs bound in one IN clause.
	maxInArgs = 500
)

var userColumns = []string{"id", "name", "email", "role", "is_active", "created_at", "deleted_at"}

var eventColumns = []string{"id", "user_id", "timestamp_ms", "status"}

// schema is applied in order by Init. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE COLLATE NOCASE,
		role       TEXT NOT NULL,
		is_active  INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL,
		deleted_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS users_name ON users (name)`,
	`CREATE TABLE IF NOT EXISTS presence_events (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		timestamp_ms INTEGER NOT NULL,
		status       TEXT NOT NULL CHECK (status IN ('IN_OFFICE', 'OUT_OF_OFFICE'))
	)`,
	`CREATE INDEX IF NOT EXISTS presence_events_user_ts ON presence_events (user_id, timestamp_ms)`,
	`CREATE INDEX IF NOT EXISTS presence_events_ts ON presence_events (timestamp_ms)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
