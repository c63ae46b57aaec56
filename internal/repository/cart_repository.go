package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
)

// CartRepo provides access to the `carts` collection.  Cart entries are
// scoped to the owning email; the bulk delete used by settlement is
// idempotent because deleting an already-absent id is a no-op.
type CartRepo struct{ DB *sql.DB }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{DB: db} }

// ListByEmail returns all cart entries owned by email, oldest first.
func (r *CartRepo) ListByEmail(ctx context.Context, email string) ([]model.CartEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, email, menu_item_id, created_at FROM carts WHERE email = ? ORDER BY created_at ASC",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CartEntry
	for rows.Next() {
		var e model.CartEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.MenuItemID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts a cart entry and returns its generated id.
func (r *CartRepo) Create(ctx context.Context, e *model.CartEntry) (string, error) {
	e.ID = uuid.NewString()
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO carts (id, email, menu_item_id) VALUES (?,?,?)",
		e.ID, e.Email, e.MenuItemID)
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

// DeleteByID removes one cart entry.  Returns ErrNotFound when the id does
// not exist.
func (r *CartRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM carts WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDsForEmail removes every cart entry in ids that belongs to
// email, in a single statement, and returns the number of rows actually
// deleted.  Ids that are absent (already settled, or never existed) are
// skipped silently; that makes the settlement's second step safe to retry
// at-least-once.  An empty id list is a no-op.
func (r *CartRepo) DeleteByIDsForEmail(ctx context.Context, email string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	query := "DELETE FROM carts WHERE email = ? AND id IN (?" + strings.Repeat(",?", len(ids)-1) + ")"
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, email)
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
