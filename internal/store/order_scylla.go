package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaOrderStore persists orders in the orders keyspace. order_items lives
// in its own table keyed by order id; order_counters backs the human-readable
// order numbers.
type ScyllaOrderStore struct{}

func NewScyllaOrderStore() *ScyllaOrderStore { return &ScyllaOrderStore{} }

const orderColumns = `order_id, order_number, user_id, customer_email, customer_name, customer_phone,
	shipping_address_line1, shipping_address_line2, shipping_city, shipping_state, shipping_zip,
	shipping_country, delivery_type, delivery_distance_miles, delivery_latitude, delivery_longitude,
	subtotal, delivery_fee, tax, total, payment_method_id, payment_proof_url, customer_notes,
	admin_notes, status, payment_status, paid_at, shipped_at, delivered_at, cancelled_at,
	created_at, updated_at`

func scanOrder(scan func(...interface{}) error) (*models.Order, error) {
	var o models.Order
	err := scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerEmail, &o.CustomerName, &o.CustomerPhone,
		&o.ShippingAddressLine1, &o.ShippingAddressLine2, &o.ShippingCity, &o.ShippingState, &o.ShippingZip,
		&o.ShippingCountry, &o.DeliveryType, &o.DeliveryDistanceMiles, &o.DeliveryLatitude, &o.DeliveryLongitude,
		&o.Subtotal, &o.DeliveryFee, &o.Tax, &o.Total, &o.PaymentMethodID, &o.PaymentProofURL, &o.CustomerNotes,
		&o.AdminNotes, &o.Status, &o.PaymentStatus, &o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// NextOrderNumber draws from the order_counters counter table and formats the
// sequence as FW-000123. The increment and the read are separate queries, so
// two concurrent checkouts can mint the same number; order_id stays the real
// primary key and the number is a human-facing label, so a rare duplicate is
// tolerated.
func (s *ScyllaOrderStore) NextOrderNumber(ctx context.Context) (string, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return "", err
	}

	if err := session.Query(`UPDATE order_counters SET seq = seq + 1 WHERE name = 'orders'`).
		WithContext(ctx).Exec(); err != nil {
		return "", err
	}

	var seq int64
	if err := session.Query(`SELECT seq FROM order_counters WHERE name = 'orders'`).
		WithContext(ctx).Scan(&seq); err != nil {
		return "", err
	}

	return fmt.Sprintf("FW-%06d", seq), nil
}

func (s *ScyllaOrderStore) Insert(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	return session.Query(`INSERT INTO orders (`+orderColumns+`) VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.OrderNumber, o.UserID, o.CustomerEmail, o.CustomerName, o.CustomerPhone,
		o.ShippingAddressLine1, o.ShippingAddressLine2, o.ShippingCity, o.ShippingState, o.ShippingZip,
		o.ShippingCountry, o.DeliveryType, o.DeliveryDistanceMiles, o.DeliveryLatitude, o.DeliveryLongitude,
		o.Subtotal, o.DeliveryFee, o.Tax, o.Total, o.PaymentMethodID, o.PaymentProofURL, o.CustomerNotes,
		o.AdminNotes, o.Status, o.PaymentStatus, o.PaidAt, o.ShippedAt, o.DeliveredAt, o.CancelledAt,
		o.CreatedAt, o.UpdatedAt).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) InsertItems(ctx context.Context, items []models.OrderItem) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	// A logged batch keeps the snapshot rows all-or-nothing within the table.
	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, it := range items {
		batch.Query(`INSERT INTO order_items (order_id, item_id, product_id, product_name, product_sku,
				wood_type, unit_type, is_heat_treated, quantity, unit_price, total_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.OrderID, it.ID, it.ProductID, it.ProductName, it.ProductSKU,
			it.WoodType, it.UnitType, it.IsHeatTreated, it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	return session.ExecuteBatch(batch)
}

// Delete removes the order row and any item rows. Used only as the
// compensating rollback; deleting a missing order is a no-op, which keeps the
// rollback idempotent.
func (s *ScyllaOrderStore) Delete(ctx context.Context, orderID gocql.UUID) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	if err := session.Query(`DELETE FROM order_items WHERE order_id = ?`, orderID).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`DELETE FROM orders WHERE order_id = ?`, orderID).
		WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) Get(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	q := session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID).WithContext(ctx)
	o, err := scanOrder(q.Scan)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ScyllaOrderStore) Items(ctx context.Context, orderID gocql.UUID) ([]models.OrderItem, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT item_id, product_id, product_name, product_sku, wood_type, unit_type,
			is_heat_treated, quantity, unit_price, total_price
		FROM order_items WHERE order_id = ?`, orderID).WithContext(ctx).Iter()

	var items []models.OrderItem
	var it models.OrderItem
	it.OrderID = orderID
	for iter.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.ProductSKU, &it.WoodType, &it.UnitType,
		&it.IsHeatTreated, &it.Quantity, &it.UnitPrice, &it.TotalPrice) {
		items = append(items, it)
		it = models.OrderItem{OrderID: orderID}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ScyllaOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).
		WithContext(ctx).Iter()
	return collectOrders(iter)
}

func (s *ScyllaOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()
	return collectOrders(iter)
}

func collectOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order
	for {
		var o models.Order
		if !iter.Scan(
			&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerEmail, &o.CustomerName, &o.CustomerPhone,
			&o.ShippingAddressLine1, &o.ShippingAddressLine2, &o.ShippingCity, &o.ShippingState, &o.ShippingZip,
			&o.ShippingCountry, &o.DeliveryType, &o.DeliveryDistanceMiles, &o.DeliveryLatitude, &o.DeliveryLongitude,
			&o.Subtotal, &o.DeliveryFee, &o.Tax, &o.Total, &o.PaymentMethodID, &o.PaymentProofURL, &o.CustomerNotes,
			&o.AdminNotes, &o.Status, &o.PaymentStatus, &o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt,
			&o.CreatedAt, &o.UpdatedAt) {
			break
		}
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *ScyllaOrderStore) UpdateStatus(ctx context.Context, orderID gocql.UUID, upd OrderStatusUpdate) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch {
	case upd.ShippedAt != nil:
		return session.Query(`UPDATE orders SET status = ?, shipped_at = ?, updated_at = ? WHERE order_id = ?`,
			upd.Status, upd.ShippedAt, now, orderID).WithContext(ctx).Exec()
	case upd.DeliveredAt != nil:
		return session.Query(`UPDATE orders SET status = ?, delivered_at = ?, updated_at = ? WHERE order_id = ?`,
			upd.Status, upd.DeliveredAt, now, orderID).WithContext(ctx).Exec()
	case upd.CancelledAt != nil:
		return session.Query(`UPDATE orders SET status = ?, cancelled_at = ?, updated_at = ? WHERE order_id = ?`,
			upd.Status, upd.CancelledAt, now, orderID).WithContext(ctx).Exec()
	default:
		return session.Query(`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
			upd.Status, now, orderID).WithContext(ctx).Exec()
	}
}

func (s *ScyllaOrderStore) UpdatePaymentStatus(ctx context.Context, orderID gocql.UUID, upd PaymentStatusUpdate) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if upd.PaidAt != nil {
		return session.Query(`UPDATE orders SET payment_status = ?, paid_at = ?, updated_at = ? WHERE order_id = ?`,
			upd.PaymentStatus, upd.PaidAt, now, orderID).WithContext(ctx).Exec()
	}
	return session.Query(`UPDATE orders SET payment_status = ?, updated_at = ? WHERE order_id = ?`,
		upd.PaymentStatus, now, orderID).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) IDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]gocql.UUID, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id FROM orders WHERE created_at < ? ALLOW FILTERING`, cutoff).
		WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ScyllaOrderStore) CountItems(ctx context.Context, orderID gocql.UUID) (int, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return 0, err
	}

	var count int
	err = session.Query(`SELECT COUNT(*) FROM order_items WHERE order_id = ?`, orderID).
		WithContext(ctx).Scan(&count)
	return count, err
}
