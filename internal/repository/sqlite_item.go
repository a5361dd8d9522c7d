package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/db"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// itemColumns is the canonical SELECT column list for items. The trailing
// subquery counts the tasks linked to a project.
const itemColumns = `i.id, i.name, i.is_task, i.parent_id, i.project_id,
		i.start_date, i.end_date, i.kickoff_date, i.close_date, i.due_date,
		i.completed_at, i.created_at, i.updated_at,
		(SELECT COUNT(*) FROM items c WHERE c.project_id = i.id AND c.is_task = 1)`

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, item *domain.RawItem) error {
	query := `INSERT INTO items (id, name, is_task, parent_id, project_id,
		start_date, end_date, kickoff_date, close_date, due_date,
		completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		boolToInt(item.IsTask),
		nullableString(item.ParentID),
		nullableString(item.ProjectID),
		nullableTimeToString(item.StartDate, dateLayout),
		nullableTimeToString(item.EndDate, dateLayout),
		nullableTimeToString(item.KickoffDate, dateLayout),
		nullableTimeToString(item.CloseDate, dateLayout),
		nullableTimeToString(item.DueDate, dateLayout),
		nullableTimeToString(item.CompletedAt, time.RFC3339),
		nullableTimeToString(item.CreatedAt, time.RFC3339),
		item.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return r.SetAssignees(ctx, item.ID, item.Assignees)
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.RawItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.id = ?`
	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	assignees, err := r.loadAssignees(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Assignees = assignees[id]
	return item, nil
}

// List returns items in insertion order, which is the arrival order the
// timeline uses for rows that have no custom position yet.
func (r *SQLiteItemRepo) List(ctx context.Context, filter ItemFilter) ([]domain.RawItem, error) {
	var where []string
	var args []any
	switch filter.Kind {
	case domain.ResourceTasks:
		where = append(where, "i.is_task = 1")
	case domain.ResourceProjects:
		where = append(where, "i.is_task = 0")
	}
	if filter.HideCompleted {
		where = append(where, "i.completed_at IS NULL")
	}

	query := `SELECT ` + itemColumns + ` FROM items i`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	items, err := scanItems(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	assignees, err := r.loadAssignees(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Assignees = assignees[items[i].ID]
	}
	return items, nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, item *domain.RawItem) error {
	query := `UPDATE items SET name = ?, is_task = ?, parent_id = ?, project_id = ?,
		start_date = ?, end_date = ?, kickoff_date = ?, close_date = ?, due_date = ?,
		completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		item.Name,
		boolToInt(item.IsTask),
		nullableString(item.ParentID),
		nullableString(item.ProjectID),
		nullableTimeToString(item.StartDate, dateLayout),
		nullableTimeToString(item.EndDate, dateLayout),
		nullableTimeToString(item.KickoffDate, dateLayout),
		nullableTimeToString(item.CloseDate, dateLayout),
		nullableTimeToString(item.DueDate, dateLayout),
		nullableTimeToString(item.CompletedAt, time.RFC3339),
		item.UpdatedAt.UTC().Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item %s: %w", item.ID, ErrNotFound)
	}
	return r.SetAssignees(ctx, item.ID, item.Assignees)
}

// SetAssignees replaces the assignee list for an item, preserving order.
func (r *SQLiteItemRepo) SetAssignees(ctx context.Context, id string, assignees []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM item_assignees WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("clearing assignees: %w", err)
	}
	seen := make(map[string]bool, len(assignees))
	for pos, a := range assignees {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO item_assignees (item_id, assignee, position) VALUES (?, ?, ?)`,
			id, a, pos)
		if err != nil {
			return fmt.Errorf("inserting assignee: %w", err)
		}
	}
	return nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return nil
}

// loadAssignees returns assignees grouped by item id. An empty id loads
// every item's assignees.
func (r *SQLiteItemRepo) loadAssignees(ctx context.Context, id string) (map[string][]string, error) {
	query := `SELECT item_id, assignee FROM item_assignees`
	var args []any
	if id != "" {
		query += ` WHERE item_id = ?`
		args = append(args, id)
	}
	query += ` ORDER BY item_id, position`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignees: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var itemID, assignee string
		if err := rows.Scan(&itemID, &assignee); err != nil {
			return nil, fmt.Errorf("scanning assignee row: %w", err)
		}
		out[itemID] = append(out[itemID], assignee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignees: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.RawItem, error) {
	var item domain.RawItem
	var isTask int
	var parentID, projectID sql.NullString
	var startDate, endDate, kickoffDate, closeDate, dueDate sql.NullString
	var completedAt, createdAt sql.NullString
	var updatedAt string

	err := row.Scan(
		&item.ID, &item.Name, &isTask, &parentID, &projectID,
		&startDate, &endDate, &kickoffDate, &closeDate, &dueDate,
		&completedAt, &createdAt, &updatedAt,
		&item.LinkedChildCount,
	)
	if err != nil {
		return nil, err
	}

	item.IsTask = intToBool(isTask)
	if parentID.Valid {
		item.ParentID = &parentID.String
	}
	if projectID.Valid {
		item.ProjectID = &projectID.String
	}
	item.StartDate = parseNullableTime(startDate, dateLayout)
	item.EndDate = parseNullableTime(endDate, dateLayout)
	item.KickoffDate = parseNullableTime(kickoffDate, dateLayout)
	item.CloseDate = parseNullableTime(closeDate, dateLayout)
	item.DueDate = parseNullableTime(dueDate, dateLayout)
	item.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	item.CreatedAt = parseNullableTime(createdAt, time.RFC3339)

	item.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]domain.RawItem, error) {
	var items []domain.RawItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}
