package repository

// postgresSchema creates the tables idempotently.
// "user" is a reserved word in Postgres and must stay quoted.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id              TEXT PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		name            TEXT,
		hashed_password TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS task (
		id          BIGSERIAL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT,
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		user_id     TEXT NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_user_id ON task (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_completed ON task (completed)`,
}

// sqliteSchema mirrors postgresSchema. Timestamps are unix milliseconds.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id              TEXT PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		name            TEXT,
		hashed_password TEXT NOT NULL,
		created_at      INTEGER NOT NULL,
		updated_at      INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL,
		description TEXT,
		completed   INTEGER NOT NULL DEFAULT 0,
		user_id     TEXT NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
		created_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_user_id ON task (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_completed ON task (completed)`,
}
