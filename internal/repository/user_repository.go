package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
)

// UserRepo provides access to the `users` collection, the identity store
// behind the authorization gate.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  passwordHash may be empty; the
// registration contract does not require a credential.  A duplicate email
// maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, password_hash, role) VALUES (?,?,?,'')",
		email, name, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail loads a user by its unique email.  Returns ErrNotFound when no
// row exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, role, created_at FROM users WHERE email = ?",
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleByEmail resolves the role of the user registered under email.  It is
// the lookup used by the admin gate; a missing user maps to ErrNotFound so
// the gate can treat it identically to a wrong role.
func (r *UserRepo) RoleByEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM users WHERE email = ?", email).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// List returns all registered users, newest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, email, name, password_hash, role, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// PromoteToAdmin sets the role of the user with the given id to admin.
// This is the only role mutation in the system; a token holder can never
// self-promote because the endpoint that calls this is itself admin-gated.
func (r *UserRepo) PromoteToAdmin(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role = ? WHERE id = ?", model.RoleAdmin, id)
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
