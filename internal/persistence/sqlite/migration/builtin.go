package migration

// Builtin returns the ordered schema migrations that ship with the binary.
// The slice is rebuilt on every call so callers cannot mutate the source.
func Builtin() []Migration {
	return []Migration{
		{
			Version:     "001",
			Description: "create users table",
			SQL: `
				CREATE TABLE IF NOT EXISTS users (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					total_seconds INTEGER NOT NULL DEFAULT 0 CHECK (total_seconds >= 0),
					created_at TEXT NOT NULL,
					updated_at TEXT NOT NULL
				);
			`,
		},
		{
			Version:     "002",
			Description: "create showers table",
			SQL: `
				CREATE TABLE IF NOT EXISTS showers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id INTEGER REFERENCES users(id),
					started_at TEXT NOT NULL,
					ended_at TEXT NOT NULL,
					duration_seconds INTEGER NOT NULL CHECK (duration_seconds >= 0),
					overshoot_seconds INTEGER NOT NULL DEFAULT 0 CHECK (overshoot_seconds >= 0),
					created_at TEXT NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_showers_user_id ON showers (user_id);
			`,
		},
	}
}
