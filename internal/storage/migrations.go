package storage

// Migration represents a database migration
type Migration struct {
	Version     string
	Description string
	SQL         string
}

// GetMigrations returns all migrations in order. Every statement is
// idempotent so the full list can run on every startup.
func GetMigrations() []*Migration {
	return []*Migration{
		{
			Version:     "001",
			Description: "Create daily_logs table",
			SQL: `
				CREATE TABLE IF NOT EXISTS daily_logs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date TEXT NOT NULL,
					category TEXT NOT NULL,
					subtype TEXT NOT NULL DEFAULT '',
					value TEXT NOT NULL DEFAULT '',
					value_kind TEXT NOT NULL DEFAULT 'text',
					completed INTEGER NOT NULL DEFAULT 1,
					timestamp INTEGER NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_daily_logs_date ON daily_logs(date);
				CREATE INDEX IF NOT EXISTS idx_daily_logs_date_category ON daily_logs(date, category);
			`,
		},
		{
			Version:     "002",
			Description: "Create slots table",
			SQL: `
				CREATE TABLE IF NOT EXISTS slots (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					updated_at INTEGER NOT NULL
				);
			`,
		},
	}
}
