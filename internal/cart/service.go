// Package cart implements the shopping cart workflow on top of the store
// layer. Every operation takes the acting user id explicitly; handlers pull it
// from the JWT context and pass it down.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/store"

	"github.com/gocql/gocql"
)

var (
	ErrInvalidQuantity = errors.New("Quantity must be greater than zero")
)

type Service struct {
	carts    store.CartStore
	products store.ProductReader
}

func NewService(carts store.CartStore, products store.ProductReader) *Service {
	return &Service{carts: carts, products: products}
}

// Get returns the user's cart with product snapshots joined in. Items whose
// product has disappeared from the catalog are dropped from the view; they
// stay in storage and simply stop rendering.
func (s *Service) Get(ctx context.Context, userID string) (*models.CartView, error) {
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	items, err := s.carts.Items(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	view := &models.CartView{Cart: *c, Items: []models.CartItemView{}}
	for _, it := range items {
		p, err := s.products.Get(ctx, it.ProductID)
		if errors.Is(err, store.ErrProductNotFound) {
			log.Printf("⚠️ Cart %s references missing product %s, skipping", c.ID, it.ProductID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", it.ProductID, err)
		}
		view.Items = append(view.Items, models.CartItemView{CartItem: it, Product: *p})
	}
	return view, nil
}

// AddItem puts quantity units of a product in the user's cart. Re-adding a
// product already in the cart merges into the existing line; the recorded
// price_at_add is whatever the product cost when the line was first created.
func (s *Service) AddItem(ctx context.Context, userID string, productID gocql.UUID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	existing, err := s.carts.FindItemByProduct(ctx, c.ID, productID)
	if err == nil {
		newQty := existing.Quantity + quantity
		if err := s.carts.SetQuantity(ctx, c.ID, existing.ID, newQty); err != nil {
			return nil, fmt.Errorf("merge cart item: %w", err)
		}
		existing.Quantity = newQty
		return existing, nil
	}
	if !errors.Is(err, store.ErrItemNotFound) {
		return nil, fmt.Errorf("lookup cart item: %w", err)
	}

	item := models.CartItem{
		ID:         gocql.TimeUUID(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
		PriceAtAdd: p.Price,
		AddedAt:    time.Now().UTC(),
	}
	if err := s.carts.InsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("insert cart item: %w", err)
	}
	return &item, nil
}

// UpdateQuantity sets a line to an absolute quantity. Zero or below means the
// customer wants the line gone.
func (s *Service) UpdateQuantity(ctx context.Context, userID string, itemID gocql.UUID, quantity int) error {
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	if _, err := s.carts.FindItem(ctx, c.ID, itemID); err != nil {
		return err
	}

	if quantity <= 0 {
		return s.carts.DeleteItem(ctx, c.ID, itemID)
	}
	return s.carts.SetQuantity(ctx, c.ID, itemID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, userID string, itemID gocql.UUID) error {
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if _, err := s.carts.FindItem(ctx, c.ID, itemID); err != nil {
		return err
	}
	return s.carts.DeleteItem(ctx, c.ID, itemID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	return s.carts.Clear(ctx, c.ID)
}
