package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
)

// ReviewRepo provides access to the `reviews` collection.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// List returns all reviews, newest first.
func (r *ReviewRepo) List(ctx context.Context) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, email, name, rating, details, created_at FROM reviews ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Email, &rv.Name, &rv.Rating, &rv.Details, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Create inserts a review and returns its generated id.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) (string, error) {
	rv.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (id, email, name, rating, details) VALUES (?,?,?,?,?)",
		rv.ID, rv.Email, rv.Name, rv.Rating, rv.Details)
	if err != nil {
		return "", err
	}
	return rv.ID, nil
}
