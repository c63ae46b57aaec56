package model

import "time"

// BookingStatusDone is the fixed status written on every derived
// confirmation record.
const BookingStatusDone = "Done"

// Booking is a table reservation submitted by a customer, stored in the
// `bookings` table.  It is the primary record; a denormalized confirmation
// copy is derived from it for downstream reporting.
type Booking struct {
	ID        string    `json:"id"`        // bookings.id (UUID)
	Email     string    `json:"email"`     // bookings.email
	Name      string    `json:"name"`      // bookings.name
	Phone     string    `json:"phone"`     // bookings.phone
	Date      string    `json:"date"`      // bookings.booking_date (as submitted)
	Guests    int       `json:"guests"`    // bookings.guests
	CreatedAt time.Time `json:"createdAt"` // bookings.created_at
}

// BookingConfirmation is the derived shadow record written after a booking
// insert, stored in the `booking_confirmations` table with Status fixed to
// BookingStatusDone.  It exists only for downstream reporting; a missing
// confirmation with a committed booking is a recoverable partial failure
// that the caller retries without re-submitting the booking.
type BookingConfirmation struct {
	ID        string    `json:"id"`        // booking_confirmations.id (UUID)
	BookingID string    `json:"bookingId"` // booking_confirmations.booking_id
	Email     string    `json:"email"`     // booking_confirmations.email
	Status    string    `json:"status"`    // booking_confirmations.status ("Done")
	CreatedAt time.Time `json:"createdAt"` // booking_confirmations.created_at
}
