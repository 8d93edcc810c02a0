// Package pricing computes order money amounts. All arithmetic happens on
// decimals so repeated cents never drift; float64 only at the edges because
// that is what the storage columns hold.
package pricing

import (
	"hearthside_back_end/internal/config"
	"hearthside_back_end/internal/models"

	"github.com/shopspring/decimal"
)

// LineTotal is unit price at the time the item entered the cart times quantity.
func LineTotal(priceAtAdd float64, quantity int) float64 {
	total, _ := decimal.NewFromFloat(priceAtAdd).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).Float64()
	return total
}

// Subtotal sums the line totals of the given cart items.
func Subtotal(items []models.CartItemView) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.PriceAtAdd).
			Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	total, _ := sum.Round(2).Float64()
	return total
}

// DeliveryFee applies the flat checkout fee: FLAT_DELIVERY_FEE for delivery
// orders, nothing for pickup.
func DeliveryFee(deliveryType string) float64 {
	if deliveryType == models.DeliveryTypeDelivery {
		return config.FlatDeliveryFee()
	}
	return 0
}

// Tax is charged at checkout. Firewood is tax-exempt in our state for
// residential heating, so this is zero today; the call sites stay so a rate
// can be introduced without touching the order writer.
func Tax(subtotal float64) float64 {
	return 0
}

// Total is subtotal + delivery fee + tax, exact to the cent.
func Total(subtotal, deliveryFee, tax float64) float64 {
	total, _ := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(deliveryFee)).
		Add(decimal.NewFromFloat(tax)).
		Round(2).Float64()
	return total
}
