package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/kairos-gantt/internal/db"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// SQLiteOrderRepo implements OrderRepo. Each (resource kind, user) slot is
// one row holding a JSON array of item ids.
type SQLiteOrderRepo struct {
	db db.DBTX
}

// NewSQLiteOrderRepo creates a new SQLiteOrderRepo.
func NewSQLiteOrderRepo(conn db.DBTX) *SQLiteOrderRepo {
	return &SQLiteOrderRepo{db: conn}
}

// Load returns the persisted ids for key. A slot that was never written
// yields nil with no error; an undecodable slot yields ErrMalformedOrder.
func (r *SQLiteOrderRepo) Load(ctx context.Context, key domain.OrderKey) ([]string, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT item_ids FROM gantt_orders WHERE resource_kind = ? AND user_id = ?`,
		string(key.ResourceKind), key.UserID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading order %s: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("order %s: %w: %v", key, ErrMalformedOrder, err)
	}
	return ids, nil
}

func (r *SQLiteOrderRepo) Save(ctx context.Context, key domain.OrderKey, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding order: %w", err)
	}

	query := `INSERT INTO gantt_orders (resource_kind, user_id, item_ids, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(resource_kind, user_id) DO UPDATE SET
			item_ids = excluded.item_ids,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query, string(key.ResourceKind), key.UserID, string(payload), nowUTC())
	if err != nil {
		return fmt.Errorf("saving order %s: %w", key, err)
	}
	return nil
}

// Reset deletes the slot so the next reconciliation falls back to arrival
// order.
func (r *SQLiteOrderRepo) Reset(ctx context.Context, key domain.OrderKey) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM gantt_orders WHERE resource_kind = ? AND user_id = ?`,
		string(key.ResourceKind), key.UserID)
	if err != nil {
		return fmt.Errorf("resetting order %s: %w", key, err)
	}
	return nil
}
