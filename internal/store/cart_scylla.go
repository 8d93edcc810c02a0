package store

import (
	"context"
	"errors"
	"time"

	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaCartStore keeps carts in the orders keyspace. carts is keyed by
// user_id, which is what enforces the one-cart-per-user invariant; cart_items
// is keyed by (cart_id, item_id).
type ScyllaCartStore struct{}

func NewScyllaCartStore() *ScyllaCartStore { return &ScyllaCartStore{} }

func (s *ScyllaCartStore) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var cartID gocql.UUID
	var createdAt time.Time
	err = session.Query(`SELECT cart_id, created_at FROM carts WHERE user_id = ?`, userID).
		WithContext(ctx).Scan(&cartID, &createdAt)
	if err == nil {
		return &models.Cart{ID: cartID, UserID: userID, CreatedAt: createdAt}, nil
	}
	if !errors.Is(err, gocql.ErrNotFound) {
		return nil, err
	}

	// Lazy creation on first interaction. LWT keeps a concurrent first-add
	// from racing two different cart ids onto the same user.
	cart := &models.Cart{ID: gocql.TimeUUID(), UserID: userID, CreatedAt: time.Now().UTC()}
	// When the insert loses the race, ScanCAS hands back the winner's row
	// (columns in schema order), so the caller still sees the one true cart.
	_, err = session.Query(
		`INSERT INTO carts (user_id, cart_id, created_at) VALUES (?, ?, ?) IF NOT EXISTS`,
		userID, cart.ID, cart.CreatedAt).WithContext(ctx).ScanCAS(&cart.ID, &cart.CreatedAt, &userID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *ScyllaCartStore) Items(ctx context.Context, cartID gocql.UUID) ([]models.CartItem, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(
		`SELECT item_id, product_id, quantity, price_at_add, added_at FROM cart_items WHERE cart_id = ?`,
		cartID).WithContext(ctx).Iter()

	var items []models.CartItem
	var it models.CartItem
	it.CartID = cartID
	for iter.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.PriceAtAdd, &it.AddedAt) {
		items = append(items, it)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ScyllaCartStore) FindItem(ctx context.Context, cartID, itemID gocql.UUID) (*models.CartItem, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	it := models.CartItem{ID: itemID, CartID: cartID}
	err = session.Query(
		`SELECT product_id, quantity, price_at_add, added_at FROM cart_items WHERE cart_id = ? AND item_id = ?`,
		cartID, itemID).WithContext(ctx).Scan(&it.ProductID, &it.Quantity, &it.PriceAtAdd, &it.AddedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *ScyllaCartStore) FindItemByProduct(ctx context.Context, cartID, productID gocql.UUID) (*models.CartItem, error) {
	items, err := s.Items(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *ScyllaCartStore) InsertItem(ctx context.Context, item models.CartItem) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(
		`INSERT INTO cart_items (cart_id, item_id, product_id, quantity, price_at_add, added_at) VALUES (?, ?, ?, ?, ?, ?)`,
		item.CartID, item.ID, item.ProductID, item.Quantity, item.PriceAtAdd, item.AddedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaCartStore) SetQuantity(ctx context.Context, cartID, itemID gocql.UUID, quantity int) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	// price_at_add is deliberately untouched here.
	return session.Query(
		`UPDATE cart_items SET quantity = ? WHERE cart_id = ? AND item_id = ?`,
		quantity, cartID, itemID).WithContext(ctx).Exec()
}

func (s *ScyllaCartStore) DeleteItem(ctx context.Context, cartID, itemID gocql.UUID) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(
		`DELETE FROM cart_items WHERE cart_id = ? AND item_id = ?`,
		cartID, itemID).WithContext(ctx).Exec()
}

func (s *ScyllaCartStore) Clear(ctx context.Context, cartID gocql.UUID) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`DELETE FROM cart_items WHERE cart_id = ?`, cartID).
		WithContext(ctx).Exec()
}
