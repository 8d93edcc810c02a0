package pricing

import (
	"testing"

	"hearthside_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func item(price float64, qty int) models.CartItemView {
	v := models.CartItemView{}
	v.PriceAtAdd = price
	v.Quantity = qty
	return v
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 0.30, LineTotal(0.10, 3))
	assert.Equal(t, 599.98, LineTotal(299.99, 2))
}

func TestSubtotalIsExact(t *testing.T) {
	items := []models.CartItemView{
		item(0.10, 3),
		item(19.99, 2),
	}
	// 0.30 + 39.98 — naive float accumulation lands on 40.279999...
	assert.Equal(t, 40.28, Subtotal(items))
}

func TestSubtotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestDeliveryFee(t *testing.T) {
	assert.Equal(t, 25.0, DeliveryFee(models.DeliveryTypeDelivery))
	assert.Equal(t, 0.0, DeliveryFee(models.DeliveryTypePickup))
}

func TestTotalAddsUp(t *testing.T) {
	sub := Subtotal([]models.CartItemView{item(149.99, 3)})
	fee := DeliveryFee(models.DeliveryTypeDelivery)
	tax := Tax(sub)
	assert.Equal(t, 449.97, sub)
	assert.Equal(t, 474.97, Total(sub, fee, tax))
}
