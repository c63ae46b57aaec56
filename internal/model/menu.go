package model

import "time"

// MenuItem represents a dish on the menu as stored in the `menu` table.
// Price is kept as the string the client submitted ("12.5" or "12.50");
// aggregations parse it as a decimal at read time rather than normalizing
// at write time, matching the observed behavior of the data set.
type MenuItem struct {
	ID        string    `json:"id"`        // menu.id (UUID)
	Name      string    `json:"name"`      // menu.name
	Category  string    `json:"category"`  // menu.category
	Recipe    string    `json:"recipe"`    // menu.recipe
	Image     string    `json:"image"`     // menu.image
	Price     string    `json:"price"`     // menu.price (stored verbatim)
	CreatedAt time.Time `json:"createdAt"` // menu.created_at
}
