package repository

import (
	"context"
	"database/sql"
)

// StatsRepo exposes the read-only aggregation queries behind the admin
// statistics endpoints.  Prices come back as the verbatim stored strings;
// the statistics service parses and sums them as decimals, which tolerates
// both "12.5" and 12.50 style storage.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// CategoryPrice is one (category, price) pair produced by joining a
// payment's menu items against the menu.  Items whose menu reference no
// longer resolves are excluded by the inner join; a join miss is not an
// error.
type CategoryPrice struct {
	Category string
	Price    string
}

func (r *StatsRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM users")
}

func (r *StatsRepo) CountMenuItems(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM menu")
}

func (r *StatsRepo) CountPayments(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM payments")
}

func (r *StatsRepo) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// PaymentPrices returns the price field of every payment, verbatim.
func (r *StatsRepo) PaymentPrices(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT price FROM payments")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CategoryPrices expands every payment's purchased menu items into
// (category, price) pairs for the category breakdown.
func (r *StatsRepo) CategoryPrices(ctx context.Context) ([]CategoryPrice, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.category, m.price
		FROM payment_menu_items pmi
		INNER JOIN menu m ON m.id = pmi.menu_item_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryPrice
	for rows.Next() {
		var cp CategoryPrice
		if err := rows.Scan(&cp.Category, &cp.Price); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}
