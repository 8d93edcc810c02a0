package cart

import (
	"context"
	"testing"
	"time"

	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/store"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stores covering the CartStore / ProductReader contracts.

type memCartStore struct {
	cart  models.Cart
	items map[gocql.UUID]models.CartItem
}

func newMemCartStore(userID string) *memCartStore {
	return &memCartStore{
		cart:  models.Cart{ID: gocql.TimeUUID(), UserID: userID, CreatedAt: time.Now().UTC()},
		items: map[gocql.UUID]models.CartItem{},
	}
}

func (m *memCartStore) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	c := m.cart
	return &c, nil
}

func (m *memCartStore) Items(ctx context.Context, cartID gocql.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *memCartStore) FindItem(ctx context.Context, cartID, itemID gocql.UUID) (*models.CartItem, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return &it, nil
}

func (m *memCartStore) FindItemByProduct(ctx context.Context, cartID, productID gocql.UUID) (*models.CartItem, error) {
	for _, it := range m.items {
		if it.ProductID == productID {
			found := it
			return &found, nil
		}
	}
	return nil, store.ErrItemNotFound
}

func (m *memCartStore) InsertItem(ctx context.Context, item models.CartItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memCartStore) SetQuantity(ctx context.Context, cartID, itemID gocql.UUID, quantity int) error {
	it := m.items[itemID]
	it.Quantity = quantity
	m.items[itemID] = it
	return nil
}

func (m *memCartStore) DeleteItem(ctx context.Context, cartID, itemID gocql.UUID) error {
	delete(m.items, itemID)
	return nil
}

func (m *memCartStore) Clear(ctx context.Context, cartID gocql.UUID) error {
	m.items = map[gocql.UUID]models.CartItem{}
	return nil
}

type memProducts struct {
	products map[gocql.UUID]models.Product
}

func (m *memProducts) Get(ctx context.Context, productID gocql.UUID) (*models.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

func newFixture() (*Service, *memCartStore, *memProducts) {
	carts := newMemCartStore("user-1")
	products := &memProducts{products: map[gocql.UUID]models.Product{}}
	return NewService(carts, products), carts, products
}

func addProduct(products *memProducts, price float64) gocql.UUID {
	id := gocql.TimeUUID()
	products.products[id] = models.Product{ID: id, Name: "Seasoned Oak Cord", Price: price, IsActive: true}
	return id
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, products := newFixture()
	pid := addProduct(products, 299.99)

	_, err := svc.AddItem(context.Background(), "user-1", pid, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.AddItem(context.Background(), "user-1", pid, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, carts, _ := newFixture()

	_, err := svc.AddItem(context.Background(), "user-1", gocql.TimeUUID(), 1)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.Empty(t, carts.items)
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	svc, _, products := newFixture()
	pid := addProduct(products, 299.99)

	item, err := svc.AddItem(context.Background(), "user-1", pid, 2)
	require.NoError(t, err)
	assert.Equal(t, 299.99, item.PriceAtAdd)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, carts, products := newFixture()
	pid := addProduct(products, 299.99)

	first, err := svc.AddItem(context.Background(), "user-1", pid, 2)
	require.NoError(t, err)

	// Price change between adds must not touch the snapshot.
	p := products.products[pid]
	p.Price = 349.99
	products.products[pid] = p

	merged, err := svc.AddItem(context.Background(), "user-1", pid, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)
	assert.Len(t, carts.items, 1)
	assert.Equal(t, 299.99, carts.items[first.ID].PriceAtAdd)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, carts, products := newFixture()
	pid := addProduct(products, 89.50)
	item, err := svc.AddItem(context.Background(), "user-1", pid, 4)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(context.Background(), "user-1", item.ID, 0))
	assert.Empty(t, carts.items)
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	svc, carts, products := newFixture()
	pid := addProduct(products, 89.50)
	item, err := svc.AddItem(context.Background(), "user-1", pid, 4)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(context.Background(), "user-1", item.ID, -5))
	assert.Empty(t, carts.items)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	svc, carts, products := newFixture()
	pid := addProduct(products, 89.50)
	item, err := svc.AddItem(context.Background(), "user-1", pid, 4)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(context.Background(), "user-1", item.ID, 1))
	assert.Equal(t, 1, carts.items[item.ID].Quantity)
	assert.Equal(t, 89.50, carts.items[item.ID].PriceAtAdd)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	svc, _, _ := newFixture()
	err := svc.UpdateQuantity(context.Background(), "user-1", gocql.TimeUUID(), 2)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestGetFiltersMissingProducts(t *testing.T) {
	svc, _, products := newFixture()
	keep := addProduct(products, 50)
	gone := addProduct(products, 75)

	_, err := svc.AddItem(context.Background(), "user-1", keep, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user-1", gone, 1)
	require.NoError(t, err)

	delete(products.products, gone)

	view, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, keep, view.Items[0].ProductID)
}

func TestClear(t *testing.T) {
	svc, carts, products := newFixture()
	pid := addProduct(products, 50)
	_, err := svc.AddItem(context.Background(), "user-1", pid, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), "user-1"))
	assert.Empty(t, carts.items)
}
