package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
)

// PaymentRepo provides access to the `payments` ledger and its two id
// tables, `payment_cart_items` and `payment_menu_items`.  Payments are
// append-only: there is no update or delete.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Insert writes the payment row and its id tables in one transaction.  The
// caller supplies the id (settlement generates it up front so the reconcile
// event can reference it even if this call is retried).  The price and the
// id lists are captured verbatim from the submission.
func (r *PaymentRepo) Insert(ctx context.Context, p *model.Payment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO payments (id, email, price) VALUES (?,?,?)",
		p.ID, strings.ToLower(strings.TrimSpace(p.Email)), p.Price); err != nil {
		return err
	}
	if err := insertIDRows(ctx, tx, "payment_cart_items", "cart_item_id", p.ID, p.CartItemIDs); err != nil {
		return err
	}
	if err := insertIDRows(ctx, tx, "payment_menu_items", "menu_item_id", p.ID, p.MenuItemIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// insertIDRows bulk-inserts (payment_id, <col>) pairs.  Passing an empty
// slice has no effect and returns nil.
func insertIDRows(ctx context.Context, tx *sql.Tx, table, col, paymentID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := "INSERT INTO " + table + " (payment_id, " + col + ") VALUES "
	args := make([]interface{}, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "(?,?)"
		args = append(args, paymentID, id)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID loads one payment including its cart-item id set.  The id set is
// what the reconcile path replays the cart deletion from.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var p model.Payment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, price, created_at FROM payments WHERE id = ?",
		id).Scan(&p.ID, &p.Email, &p.Price, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT cart_item_id FROM payment_cart_items WHERE payment_id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		p.CartItemIDs = append(p.CartItemIDs, cid)
	}
	return &p, rows.Err()
}

// ListByEmail returns the payment history of one user, newest first.  The
// per-payment id sets are not loaded for the list view.
func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, email, price, created_at FROM payments WHERE email = ? ORDER BY created_at DESC",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
