package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// parent_id carries no foreign key: a task may point at a parent that
	// was deleted or never existed, and the timeline promotes it to a root.
	`CREATE TABLE IF NOT EXISTS items (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		is_task       INTEGER NOT NULL DEFAULT 1 CHECK(is_task IN (0, 1)),
		parent_id     TEXT,
		project_id    TEXT REFERENCES items(id) ON DELETE SET NULL,
		start_date    TEXT,
		end_date      TEXT,
		kickoff_date  TEXT,
		close_date    TEXT,
		due_date      TEXT,
		completed_at  TEXT,
		created_at    TEXT,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_kind ON items(is_task)`,
	`CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_project ON items(project_id)`,

	`CREATE TABLE IF NOT EXISTS item_assignees (
		item_id   TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		assignee  TEXT NOT NULL,
		position  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (item_id, assignee)
	)`,

	`CREATE TABLE IF NOT EXISTS gantt_orders (
		resource_kind  TEXT NOT NULL CHECK(resource_kind IN ('tasks','projects')),
		user_id        TEXT NOT NULL,
		item_ids       TEXT NOT NULL DEFAULT '[]',
		updated_at     TEXT NOT NULL,
		PRIMARY KEY (resource_kind, user_id)
	)`,
}
