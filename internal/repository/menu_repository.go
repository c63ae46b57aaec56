package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
)

// MenuRepo provides access to the `menu` collection.  The menu surface is
// plain reads and inserts; the only contract it carries is that prices are
// stored verbatim and parsed at read time by the statistics service.
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

// List returns the whole menu.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, category, recipe, image, price, created_at FROM menu ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Recipe, &m.Image, &m.Price, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create inserts a menu item and returns its generated id.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) (string, error) {
	m.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO menu (id, name, category, recipe, image, price) VALUES (?,?,?,?,?,?)",
		m.ID, m.Name, m.Category, m.Recipe, m.Image, m.Price)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// Delete removes a menu item by id.  Returns ErrNotFound when the id does
// not exist.
func (r *MenuRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM menu WHERE id = ?", id)
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
