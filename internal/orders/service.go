// Package orders owns order creation and the two status axes. The writer is
// deliberately conservative: nothing is written until the cart checks out as
// non-empty, and a failed item insert rolls the order row back so no order is
// ever visible without its lines.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/pricing"
	"hearthside_back_end/internal/store"
	"hearthside_back_end/internal/utils"

	"github.com/gocql/gocql"
)

var (
	ErrCartEmpty            = errors.New("Your cart is empty")
	ErrInvalidStatus        = errors.New("Invalid order status")
	ErrInvalidPaymentStatus = errors.New("Invalid payment status")
)

// CartReader is the slice of the cart service the order writer needs.
type CartReader interface {
	Get(ctx context.Context, userID string) (*models.CartView, error)
	Clear(ctx context.Context, userID string) error
}

type Service struct {
	orders store.OrderStore
	carts  CartReader
}

func NewService(orders store.OrderStore, carts CartReader) *Service {
	return &Service{orders: orders, carts: carts}
}

// PlaceOrderInput carries everything checkout collects. Contact and shipping
// fields are copied onto the order row so later profile edits never rewrite
// history.
type PlaceOrderInput struct {
	CustomerEmail        string
	CustomerName         string
	CustomerPhone        string
	DeliveryType         string
	ShippingAddressLine1 string
	ShippingAddressLine2 string
	ShippingCity         string
	ShippingState        string
	ShippingZip          string
	ShippingCountry      string
	PaymentMethodID      *gocql.UUID
	PaymentProofURL      string
	CustomerNotes        string

	// Optional snapshot of the delivery estimator's answer for this address.
	// Informational: the live fee is the flat one either way.
	DeliveryDistanceMiles *float64
	DeliveryLatitude      *float64
	DeliveryLongitude     *float64
}

// PlaceOrder turns the user's cart into an order. On success the cart is
// cleared; on any failure after the order row exists, the row is deleted and
// the cart is left exactly as it was so the customer can retry.
func (s *Service) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	view, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(view.Items) == 0 {
		return nil, ErrCartEmpty
	}

	deliveryType := in.DeliveryType
	if deliveryType != models.DeliveryTypePickup {
		deliveryType = models.DeliveryTypeDelivery
	}

	subtotal := pricing.Subtotal(view.Items)
	deliveryFee := pricing.DeliveryFee(deliveryType)
	tax := pricing.Tax(subtotal)
	total := pricing.Total(subtotal, deliveryFee, tax)

	orderNumber, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		// The counter being unreachable must not block checkout. The
		// fallback number is unique enough in practice and flagged in logs.
		log.Printf("⚠️ Order counter unavailable, using fallback number: %v", err)
		orderNumber = utils.FallbackOrderNumber()
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:                    gocql.TimeUUID(),
		OrderNumber:           orderNumber,
		UserID:                userID,
		CustomerEmail:         in.CustomerEmail,
		CustomerName:          in.CustomerName,
		CustomerPhone:         in.CustomerPhone,
		ShippingAddressLine1:  in.ShippingAddressLine1,
		ShippingAddressLine2:  in.ShippingAddressLine2,
		ShippingCity:          in.ShippingCity,
		ShippingState:         in.ShippingState,
		ShippingZip:           in.ShippingZip,
		ShippingCountry:       in.ShippingCountry,
		DeliveryType:          deliveryType,
		DeliveryDistanceMiles: in.DeliveryDistanceMiles,
		DeliveryLatitude:      in.DeliveryLatitude,
		DeliveryLongitude:     in.DeliveryLongitude,
		Subtotal:              subtotal,
		DeliveryFee:           deliveryFee,
		Tax:                   tax,
		Total:                 total,
		PaymentMethodID:       in.PaymentMethodID,
		PaymentProofURL:       in.PaymentProofURL,
		CustomerNotes:         in.CustomerNotes,
		Status:                models.OrderStatusPending,
		PaymentStatus:         models.PaymentStatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(view.Items))
	for _, it := range view.Items {
		pid := it.ProductID
		items = append(items, models.OrderItem{
			ID:            gocql.TimeUUID(),
			OrderID:       order.ID,
			ProductID:     &pid,
			ProductName:   it.Product.Name,
			ProductSKU:    it.Product.SKU,
			WoodType:      it.Product.WoodType,
			UnitType:      it.Product.UnitType,
			IsHeatTreated: it.Product.IsHeatTreated,
			Quantity:      it.Quantity,
			UnitPrice:     it.PriceAtAdd,
			TotalPrice:    pricing.LineTotal(it.PriceAtAdd, it.Quantity),
		})
	}

	if err := s.orders.InsertItems(ctx, items); err != nil {
		// Compensating delete. Safe to repeat, so a failure here just means
		// the reconcile sweep picks the orphan up later.
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			log.Printf("❌ Rollback of order %s failed: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("insert order items: %w", err)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order stands; an un-cleared cart is an annoyance, not a loss.
		log.Printf("⚠️ Could not clear cart for user %s after order %s: %v", userID, orderNumber, err)
	}

	log.Printf("✅ Order %s placed for user %s (total $%.2f)", orderNumber, userID, total)
	return order, nil
}

// SetStatus moves the fulfillment axis. Any status in the enum is accepted
// from any other status; admins are trusted to correct mistakes, including
// moving backwards. Entering shipped/delivered/cancelled stamps the matching
// timestamp, re-entering re-stamps it.
func (s *Service) SetStatus(ctx context.Context, orderID gocql.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatuses[status] {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	upd := store.OrderStatusUpdate{Status: status}
	switch status {
	case models.OrderStatusShipped:
		upd.ShippedAt = &now
	case models.OrderStatusDelivered:
		upd.DeliveredAt = &now
	case models.OrderStatusCancelled:
		upd.CancelledAt = &now
	}

	if err := s.orders.UpdateStatus(ctx, orderID, upd); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	order.UpdatedAt = now
	switch status {
	case models.OrderStatusShipped:
		order.ShippedAt = &now
	case models.OrderStatusDelivered:
		order.DeliveredAt = &now
	case models.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	log.Printf("📦 Order %s status → %s", order.OrderNumber, status)
	return order, nil
}

// SetPaymentStatus moves the payment axis independently of fulfillment.
func (s *Service) SetPaymentStatus(ctx context.Context, orderID gocql.UUID, paymentStatus string) (*models.Order, error) {
	if !models.ValidPaymentStatuses[paymentStatus] {
		return nil, ErrInvalidPaymentStatus
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	upd := store.PaymentStatusUpdate{PaymentStatus: paymentStatus}
	if paymentStatus == models.PaymentStatusPaid {
		upd.PaidAt = &now
	}

	if err := s.orders.UpdatePaymentStatus(ctx, orderID, upd); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	order.PaymentStatus = paymentStatus
	order.UpdatedAt = now
	if paymentStatus == models.PaymentStatusPaid {
		order.PaidAt = &now
	}
	log.Printf("💳 Order %s payment → %s", order.OrderNumber, paymentStatus)
	return order, nil
}

// ReconcileOrphans deletes orders older than cutoff that have no items, the
// leftovers of a rollback that itself failed. Returns the ids it removed.
func (s *Service) ReconcileOrphans(ctx context.Context, cutoff time.Time) ([]gocql.UUID, error) {
	ids, err := s.orders.IDsCreatedBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	var removed []gocql.UUID
	for _, id := range ids {
		n, err := s.orders.CountItems(ctx, id)
		if err != nil {
			return removed, fmt.Errorf("count items for %s: %w", id, err)
		}
		if n > 0 {
			continue
		}
		if err := s.orders.Delete(ctx, id); err != nil {
			return removed, fmt.Errorf("delete orphan %s: %w", id, err)
		}
		log.Printf("🧹 Removed orphan order %s", id)
		removed = append(removed, id)
	}
	return removed, nil
}
