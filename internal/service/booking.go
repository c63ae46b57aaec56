package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/queue"
)

// BookingStore is the slice of the booking store the reconciliation flow
// writes to.  *repository.BookingRepo satisfies it.
type BookingStore interface {
	InsertBooking(ctx context.Context, b *model.Booking) (string, error)
	InsertConfirmation(ctx context.Context, bookingID, email string) (string, error)
}

// AnnounceFunc publishes the booking-confirmed event once both records are
// committed.  queue.PublishBookingConfirmed satisfies it.
type AnnounceFunc func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// OpResult reports one of the two independent inserts of a booking.
type OpResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId,omitempty"`
	Message      string `json:"message,omitempty"`
}

// BookResult combines both insert outcomes so the caller can detect a
// partial failure (booking recorded, confirmation missing) and retry the
// confirmation without duplicating the booking.
type BookResult struct {
	BookingResult     OpResult `json:"bookingResult"`
	ShowBookingResult OpResult `json:"showBookingResult"`
}

// Bookings performs booking reconciliation: the primary booking insert
// followed by the derived confirmation insert.  The inserts are
// independent; the primary booking is never rolled back when the derived
// record fails, and the failure is reported rather than swallowed.
type Bookings struct {
	store    BookingStore
	announce AnnounceFunc
}

// NewBookings wires the reconciliation flow.  announce may be nil.
func NewBookings(store BookingStore, announce AnnounceFunc) *Bookings {
	return &Bookings{store: store, announce: announce}
}

// Book inserts the booking record, then its "Done"-tagged confirmation.
// When the primary insert fails the error is returned and nothing is
// committed.  When only the confirmation fails, the returned result shows
// the booking acknowledged and the confirmation not, with a nil error.
func (b *Bookings) Book(ctx context.Context, bk *model.Booking) (BookResult, error) {
	bookingID, err := b.store.InsertBooking(ctx, bk)
	if err != nil {
		return BookResult{}, fmt.Errorf("record booking: %w", err)
	}

	res := BookResult{
		BookingResult: OpResult{Acknowledged: true, InsertedID: bookingID},
	}

	confID, err := b.store.InsertConfirmation(ctx, bookingID, bk.Email)
	if err != nil {
		log.Printf("booking: confirmation for %s failed: %v", bookingID, err)
		res.ShowBookingResult = OpResult{
			Acknowledged: false,
			Message:      "booking recorded; confirmation missing, retry confirmation only",
		}
		return res, nil
	}
	res.ShowBookingResult = OpResult{Acknowledged: true, InsertedID: confID}

	if b.announce != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:      bookingID,
			ConfirmationID: confID,
			Email:          bk.Email,
			Date:           bk.Date,
			Guests:         bk.Guests,
			Status:         model.BookingStatusDone,
			ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := b.announce(ctx, ev); err != nil {
			// The records are committed; the announcement is best effort.
			log.Printf("booking: announce %s failed: %v", bookingID, err)
		}
	}
	return res, nil
}
