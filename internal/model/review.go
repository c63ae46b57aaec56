package model

import "time"

// Review is a customer review row from the `reviews` table.  Reviews are a
// plain append-only collection; nothing downstream depends on them.
type Review struct {
	ID        string    `json:"id"`        // reviews.id (UUID)
	Email     string    `json:"email"`     // reviews.email
	Name      string    `json:"name"`      // reviews.name
	Rating    int       `json:"rating"`    // reviews.rating
	Details   string    `json:"details"`   // reviews.details
	CreatedAt time.Time `json:"createdAt"` // reviews.created_at
}
