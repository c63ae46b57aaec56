package model

import "time"

// CartEntry is one item placed in a user's cart, stored in the `carts`
// table.  Entries are owned by the email that created them and are removed
// either individually or in bulk when a settlement consumes them.
//
// Fields:
//
//	ID         – primary key (UUID), the opaque id referenced by payments.
//	Email      – cart owner.
//	MenuItemID – the menu item this entry points at.
//	CreatedAt  – timestamp of creation.
type CartEntry struct {
	ID         string    `json:"id"`         // carts.id
	Email      string    `json:"email"`      // carts.email
	MenuItemID string    `json:"menuItemId"` // carts.menu_item_id
	CreatedAt  time.Time `json:"createdAt"`  // carts.created_at
}
