package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/store"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOrderStore struct {
	seq        int64
	counterErr error
	insertErr  error
	itemsErr   error

	orders map[gocql.UUID]models.Order
	items  map[gocql.UUID][]models.OrderItem
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{
		orders: map[gocql.UUID]models.Order{},
		items:  map[gocql.UUID][]models.OrderItem{},
	}
}

func (m *memOrderStore) NextOrderNumber(ctx context.Context) (string, error) {
	if m.counterErr != nil {
		return "", m.counterErr
	}
	m.seq++
	return fmt.Sprintf("FW-%06d", m.seq), nil
}

func (m *memOrderStore) Insert(ctx context.Context, o *models.Order) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrderStore) InsertItems(ctx context.Context, items []models.OrderItem) error {
	if m.itemsErr != nil {
		return m.itemsErr
	}
	if len(items) > 0 {
		m.items[items[0].OrderID] = items
	}
	return nil
}

func (m *memOrderStore) Delete(ctx context.Context, orderID gocql.UUID) error {
	delete(m.orders, orderID)
	delete(m.items, orderID)
	return nil
}

func (m *memOrderStore) Get(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memOrderStore) Items(ctx context.Context, orderID gocql.UUID) ([]models.OrderItem, error) {
	return m.items[orderID], nil
}

func (m *memOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return nil, nil
}

func (m *memOrderStore) ListAll(ctx context.Context) ([]models.Order, error) { return nil, nil }

func (m *memOrderStore) UpdateStatus(ctx context.Context, orderID gocql.UUID, upd store.OrderStatusUpdate) error {
	o := m.orders[orderID]
	o.Status = upd.Status
	if upd.ShippedAt != nil {
		o.ShippedAt = upd.ShippedAt
	}
	if upd.DeliveredAt != nil {
		o.DeliveredAt = upd.DeliveredAt
	}
	if upd.CancelledAt != nil {
		o.CancelledAt = upd.CancelledAt
	}
	m.orders[orderID] = o
	return nil
}

func (m *memOrderStore) UpdatePaymentStatus(ctx context.Context, orderID gocql.UUID, upd store.PaymentStatusUpdate) error {
	o := m.orders[orderID]
	o.PaymentStatus = upd.PaymentStatus
	if upd.PaidAt != nil {
		o.PaidAt = upd.PaidAt
	}
	m.orders[orderID] = o
	return nil
}

func (m *memOrderStore) IDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]gocql.UUID, error) {
	var ids []gocql.UUID
	for id, o := range m.orders {
		if o.CreatedAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memOrderStore) CountItems(ctx context.Context, orderID gocql.UUID) (int, error) {
	return len(m.items[orderID]), nil
}

type memCart struct {
	view    models.CartView
	cleared bool
}

func (m *memCart) Get(ctx context.Context, userID string) (*models.CartView, error) {
	v := m.view
	return &v, nil
}

func (m *memCart) Clear(ctx context.Context, userID string) error {
	m.cleared = true
	m.view.Items = nil
	return nil
}

func cartWith(lines ...models.CartItemView) *memCart {
	return &memCart{view: models.CartView{
		Cart:  models.Cart{ID: gocql.TimeUUID(), UserID: "user-1"},
		Items: lines,
	}}
}

func line(name string, price float64, qty int) models.CartItemView {
	v := models.CartItemView{}
	v.ID = gocql.TimeUUID()
	v.ProductID = gocql.TimeUUID()
	v.PriceAtAdd = price
	v.Quantity = qty
	v.Product = models.Product{ID: v.ProductID, Name: name, SKU: "SKU-" + name, WoodType: "oak", UnitType: models.UnitFaceCord}
	return v
}

func input() PlaceOrderInput {
	return PlaceOrderInput{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane Doe",
		DeliveryType:  models.DeliveryTypeDelivery,
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	os := newMemOrderStore()
	cart := cartWith()
	svc := NewService(os, cart)

	_, err := svc.PlaceOrder(context.Background(), "user-1", input())
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Empty(t, os.orders)
	assert.False(t, cart.cleared)
}

func TestPlaceOrderSuccess(t *testing.T) {
	os := newMemOrderStore()
	cart := cartWith(line("oak", 149.99, 3), line("birch", 12.50, 2))
	svc := NewService(os, cart)

	order, err := svc.PlaceOrder(context.Background(), "user-1", input())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 474.97, order.Subtotal)
	assert.Equal(t, 25.0, order.DeliveryFee)
	assert.Equal(t, 0.0, order.Tax)
	assert.Equal(t, 499.97, order.Total)

	require.Len(t, os.orders, 1)
	items := os.items[order.ID]
	require.Len(t, items, 2)
	assert.Equal(t, "oak", items[0].ProductName)
	assert.Equal(t, 449.97, items[0].TotalPrice)
	assert.True(t, cart.cleared)
}

func TestPlaceOrderSingleLineTotals(t *testing.T) {
	os := newMemOrderStore()
	svc := NewService(os, cartWith(line("maple", 175.00, 2)))

	order, err := svc.PlaceOrder(context.Background(), "user-1", input())
	require.NoError(t, err)
	assert.Equal(t, 350.0, order.Subtotal)
	assert.Equal(t, 25.0, order.DeliveryFee)
	assert.Equal(t, 375.0, order.Total)
}

func TestPlaceOrderPickupHasNoFee(t *testing.T) {
	os := newMemOrderStore()
	cart := cartWith(line("oak", 100, 1))
	svc := NewService(os, cart)

	in := input()
	in.DeliveryType = models.DeliveryTypePickup
	order, err := svc.PlaceOrder(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, 100.0, order.Total)
}

func TestPlaceOrderFallbackNumber(t *testing.T) {
	os := newMemOrderStore()
	os.counterErr = errors.New("counter unavailable")
	cart := cartWith(line("oak", 100, 1))
	svc := NewService(os, cart)

	order, err := svc.PlaceOrder(context.Background(), "user-1", input())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^FW-\d+-[A-Z0-9]{9}$`), order.OrderNumber)
}

func TestPlaceOrderRollsBackOnItemFailure(t *testing.T) {
	os := newMemOrderStore()
	os.itemsErr = errors.New("write timeout")
	cart := cartWith(line("oak", 100, 1))
	svc := NewService(os, cart)

	_, err := svc.PlaceOrder(context.Background(), "user-1", input())
	require.Error(t, err)
	assert.Empty(t, os.orders, "half-created order must be rolled back")
	assert.False(t, cart.cleared, "cart must survive a failed checkout")
}

func placed(t *testing.T, os *memOrderStore) *models.Order {
	t.Helper()
	cart := cartWith(line("oak", 100, 1))
	order, err := NewService(os, cart).PlaceOrder(context.Background(), "user-1", input())
	require.NoError(t, err)
	return order
}

func TestSetStatusStampsTimestamps(t *testing.T) {
	os := newMemOrderStore()
	order := placed(t, os)
	svc := NewService(os, cartWith())

	updated, err := svc.SetStatus(context.Background(), order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	require.NotNil(t, updated.ShippedAt)
	assert.Nil(t, updated.DeliveredAt)

	updated, err = svc.SetStatus(context.Background(), order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.NotNil(t, os.orders[order.ID].ShippedAt)
	require.NotNil(t, updated.DeliveredAt)
}

func TestSetStatusAllowsBackwardMoves(t *testing.T) {
	os := newMemOrderStore()
	order := placed(t, os)
	svc := NewService(os, cartWith())

	_, err := svc.SetStatus(context.Background(), order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	updated, err := svc.SetStatus(context.Background(), order.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	os := newMemOrderStore()
	order := placed(t, os)
	svc := NewService(os, cartWith())

	_, err := svc.SetStatus(context.Background(), order.ID, "lost_in_transit")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPaymentAxisIsIndependent(t *testing.T) {
	os := newMemOrderStore()
	order := placed(t, os)
	svc := NewService(os, cartWith())

	updated, err := svc.SetPaymentStatus(context.Background(), order.ID, models.PaymentStatusPaid)
	require.NoError(t, err)
	require.NotNil(t, updated.PaidAt)
	assert.Equal(t, models.OrderStatusPending, os.orders[order.ID].Status)

	// Cancelling the order does not unset the payment record.
	_, err = svc.SetStatus(context.Background(), order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, os.orders[order.ID].PaymentStatus)
	assert.NotNil(t, os.orders[order.ID].PaidAt)
}

func TestReconcileOrphansRemovesItemlessOrders(t *testing.T) {
	os := newMemOrderStore()
	healthy := placed(t, os)

	orphan := models.Order{ID: gocql.TimeUUID(), CreatedAt: time.Now().Add(-time.Hour)}
	os.orders[orphan.ID] = orphan
	// Backdate the healthy order too so only item count separates them.
	h := os.orders[healthy.ID]
	h.CreatedAt = time.Now().Add(-time.Hour)
	os.orders[healthy.ID] = h

	svc := NewService(os, cartWith())
	removed, err := svc.ReconcileOrphans(context.Background(), time.Now().Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []gocql.UUID{orphan.ID}, removed)
	assert.Contains(t, os.orders, healthy.ID)
}
