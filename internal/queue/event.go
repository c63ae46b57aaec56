// Package queue defines message payloads exchanged over the message broker
// and the background consumer that repairs half-finished settlements.
package queue

// PaymentReconcileEvent is published when the cart-deletion half of a
// settlement fails after the payment insert succeeded.  It carries the
// payment record's authoritative cart-item id set so a consumer can re-run
// the deletion without touching the primary database's payment row.  The
// deletion is idempotent, so delivering this event more than once is safe.
type PaymentReconcileEvent struct {
	PaymentID   string   `json:"payment_id"`
	Email       string   `json:"email"`
	CartItemIDs []string `json:"cart_item_ids"`
	QueuedAt    string   `json:"queued_at"`
}

// BookingConfirmedEvent is published once a booking and its derived
// confirmation record have both been written.  It contains enough
// information for downstream consumers to log or notify without querying
// the primary database.
type BookingConfirmedEvent struct {
	BookingID      string `json:"booking_id"`
	ConfirmationID string `json:"confirmation_id"`
	Email          string `json:"email"`
	Date           string `json:"date"`
	Guests         int    `json:"guests"`
	Status         string `json:"status"`
	ConfirmedAt    string `json:"confirmed_at"`
}
