// Package store holds the persistence interfaces for the checkout core and
// their ScyllaDB implementations. Handlers for plain catalog/admin CRUD query
// sessions directly; the cart and order services go through these interfaces
// so their state-transition logic is testable without a cluster.
package store

import (
	"context"
	"errors"
	"time"

	"hearthside_back_end/internal/models"

	"github.com/gocql/gocql"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// CartStore persists carts and their line items. At most one cart exists per
// user (carts are keyed by user id); implementations never delete a cart, only
// its items.
type CartStore interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	Items(ctx context.Context, cartID gocql.UUID) ([]models.CartItem, error)
	FindItem(ctx context.Context, cartID, itemID gocql.UUID) (*models.CartItem, error)
	FindItemByProduct(ctx context.Context, cartID, productID gocql.UUID) (*models.CartItem, error)
	InsertItem(ctx context.Context, item models.CartItem) error
	SetQuantity(ctx context.Context, cartID, itemID gocql.UUID, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID gocql.UUID) error
	Clear(ctx context.Context, cartID gocql.UUID) error
}

// ProductReader is the read-only slice of the catalog the cart needs for
// price snapshots and cart-view joins.
type ProductReader interface {
	Get(ctx context.Context, productID gocql.UUID) (*models.Product, error)
}

// OrderStatusUpdate enumerates exactly the fields a fulfillment-status
// transition may touch. Only the timestamp matching the new status is non-nil.
type OrderStatusUpdate struct {
	Status      string
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// PaymentStatusUpdate is the payment axis counterpart. It never carries any
// fulfillment field, so the two axes cannot cross-mutate.
type PaymentStatusUpdate struct {
	PaymentStatus string
	PaidAt        *time.Time
}

// OrderStore persists orders and their immutable item snapshots.
type OrderStore interface {
	// NextOrderNumber draws the next human-readable number from the
	// storage-side sequence. Callers fall back to a synthesized number
	// when this fails.
	NextOrderNumber(ctx context.Context) (string, error)
	Insert(ctx context.Context, o *models.Order) error
	InsertItems(ctx context.Context, items []models.OrderItem) error
	// Delete is the compensating rollback for a half-created order. It is
	// idempotent: deleting an already-deleted order is not an error.
	Delete(ctx context.Context, orderID gocql.UUID) error
	Get(ctx context.Context, orderID gocql.UUID) (*models.Order, error)
	Items(ctx context.Context, orderID gocql.UUID) ([]models.OrderItem, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID gocql.UUID, upd OrderStatusUpdate) error
	UpdatePaymentStatus(ctx context.Context, orderID gocql.UUID, upd PaymentStatusUpdate) error
	// IDsCreatedBefore and CountItems feed the orphan reconciliation sweep.
	IDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]gocql.UUID, error)
	CountItems(ctx context.Context, orderID gocql.UUID) (int, error)
}
