package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"items", "item_assignees", "gantt_orders"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"idx_items_kind", "idx_items_parent", "idx_items_project"}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_GanttOrdersRejectsUnknownKind(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO gantt_orders (resource_kind, user_id, item_ids, updated_at)
		VALUES ('widgets', 'u1', '[]', '2024-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_DanglingParentAllowed(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO items (id, name, is_task, parent_id, updated_at)
		VALUES ('t1', 'Orphan', 1, 'gone', '2024-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_AssigneesCascadeOnDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO items (id, name, updated_at) VALUES ('t1', 'Task', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO item_assignees (item_id, assignee) VALUES ('t1', 'ana')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM items WHERE id = 't1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM item_assignees`).Scan(&n))
	assert.Equal(t, 0, n)
}
