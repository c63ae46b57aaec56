package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
)

// BookingRepo provides access to the `bookings` collection and its derived
// `booking_confirmations` shadow table.  The two inserts are deliberately
// independent: the reconciliation service performs them in sequence and
// reports each result so a caller can retry a missing confirmation without
// duplicating the booking.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// InsertBooking writes the primary booking record and returns its id.
func (r *BookingRepo) InsertBooking(ctx context.Context, b *model.Booking) (string, error) {
	b.ID = uuid.NewString()
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (id, email, name, phone, booking_date, guests) VALUES (?,?,?,?,?,?)",
		b.ID, b.Email, b.Name, b.Phone, b.Date, b.Guests)
	if err != nil {
		return "", err
	}
	return b.ID, nil
}

// InsertConfirmation writes the derived confirmation record for a booking.
// The status is always model.BookingStatusDone.
func (r *BookingRepo) InsertConfirmation(ctx context.Context, bookingID, email string) (string, error) {
	conf := model.BookingConfirmation{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Status:    model.BookingStatusDone,
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO booking_confirmations (id, booking_id, email, status) VALUES (?,?,?,?)",
		conf.ID, conf.BookingID, conf.Email, conf.Status)
	if err != nil {
		return "", err
	}
	return conf.ID, nil
}

// ListByEmail returns the bookings submitted by one user, newest first.
func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, email, name, phone, booking_date, guests, created_at FROM bookings WHERE email = ? ORDER BY created_at DESC",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Email, &b.Name, &b.Phone, &b.Date, &b.Guests, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
