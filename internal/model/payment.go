package model

import "time"

// Payment is an append-only ledger entry created by a settlement, stored in
// the `payments` table.  It is immutable once created.  The cart-entry ids
// it supersedes live in `payment_cart_items` and are the authoritative set
// for the reconcile path: re-running the cart deletion from CartItemIDs is
// always safe because deleting an absent id is a no-op.
//
// Fields:
//
//	ID          – primary key (UUID).
//	Email       – the paying user; must equal the settling caller's claim.
//	Price       – total charged, stored verbatim as submitted.
//	CartItemIDs – ids of the cart entries consumed by this payment.
//	MenuItemIDs – ids of the menu items purchased (for reporting joins).
//	CreatedAt   – timestamp of creation.
type Payment struct {
	ID          string    `json:"id"`                    // payments.id
	Email       string    `json:"email"`                 // payments.email
	Price       string    `json:"price"`                 // payments.price (stored verbatim)
	CartItemIDs []string  `json:"cartItemIds,omitempty"` // payment_cart_items.cart_item_id
	MenuItemIDs []string  `json:"menuItemIds,omitempty"` // payment_menu_items.menu_item_id
	CreatedAt   time.Time `json:"createdAt"`             // payments.created_at
}
