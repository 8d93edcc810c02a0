package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Cart is the per-user pre-purchase container. One cart per user, created
// lazily on first interaction and never deleted (its items are cleared instead).
type Cart struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// CartItem holds a quantity of one product. PriceAtAdd is snapshotted from the
// product's current price when the row is first inserted and never recomputed,
// so later catalog price edits cannot change the line.
type CartItem struct {
	ID         gocql.UUID `json:"id"`
	CartID     gocql.UUID `json:"cart_id"`
	ProductID  gocql.UUID `json:"product_id"`
	Quantity   int        `json:"quantity"`
	PriceAtAdd float64    `json:"price_at_add"`
	AddedAt    time.Time  `json:"added_at"`
}

// CartItemView is a cart item joined with its live product.
type CartItemView struct {
	CartItem
	Product Product `json:"product"`
}

// CartView is what the storefront renders: the cart plus its resolvable items.
// Items whose product no longer exists are filtered out before this is built.
type CartView struct {
	Cart
	Items []CartItemView `json:"items"`
}
