package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Fulfillment statuses. No linear ordering is enforced: an admin may set any
// status at any time, cancelled included.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses, tracked on a separate axis from fulfillment.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

var ValidPaymentStatuses = map[string]bool{
	PaymentStatusPending:  true,
	PaymentStatusPaid:     true,
	PaymentStatusFailed:   true,
	PaymentStatusRefunded: true,
}

// Order is immutable once created except for the two status axes and their
// timestamps. Total = Subtotal + DeliveryFee + Tax, computed once at creation.
type Order struct {
	ID                    gocql.UUID  `json:"id"`
	OrderNumber           string      `json:"order_number"`
	UserID                string      `json:"user_id"`
	CustomerEmail         string      `json:"customer_email"`
	CustomerName          string      `json:"customer_name"`
	CustomerPhone         string      `json:"customer_phone,omitempty"`
	ShippingAddressLine1  string      `json:"shipping_address_line1"`
	ShippingAddressLine2  string      `json:"shipping_address_line2,omitempty"`
	ShippingCity          string      `json:"shipping_city"`
	ShippingState         string      `json:"shipping_state"`
	ShippingZip           string      `json:"shipping_zip"`
	ShippingCountry       string      `json:"shipping_country"`
	DeliveryType          string      `json:"delivery_type"`
	DeliveryDistanceMiles *float64    `json:"delivery_distance_miles,omitempty"`
	DeliveryLatitude      *float64    `json:"delivery_latitude,omitempty"`
	DeliveryLongitude     *float64    `json:"delivery_longitude,omitempty"`
	Subtotal              float64     `json:"subtotal"`
	DeliveryFee           float64     `json:"delivery_fee"`
	Tax                   float64     `json:"tax"`
	Total                 float64     `json:"total"`
	PaymentMethodID       *gocql.UUID `json:"payment_method_id,omitempty"`
	PaymentProofURL       string      `json:"payment_proof_url,omitempty"`
	CustomerNotes         string      `json:"customer_notes,omitempty"`
	AdminNotes            string      `json:"admin_notes,omitempty"`
	Status                string      `json:"status"`
	PaymentStatus         string      `json:"payment_status"`
	PaidAt                *time.Time  `json:"paid_at,omitempty"`
	ShippedAt             *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt           *time.Time  `json:"delivered_at,omitempty"`
	CancelledAt           *time.Time  `json:"cancelled_at,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// OrderItem snapshots one cart line at the moment of purchase. The product
// fields are denormalized so the order survives later product edits or
// deletion; ProductID is informational only.
type OrderItem struct {
	ID            gocql.UUID  `json:"id"`
	OrderID       gocql.UUID  `json:"order_id"`
	ProductID     *gocql.UUID `json:"product_id,omitempty"`
	ProductName   string      `json:"product_name"`
	ProductSKU    string      `json:"product_sku,omitempty"`
	WoodType      string      `json:"wood_type"`
	UnitType      string      `json:"unit_type"`
	IsHeatTreated bool        `json:"is_heat_treated"`
	Quantity      int         `json:"quantity"`
	UnitPrice     float64     `json:"unit_price"`
	TotalPrice    float64     `json:"total_price"`
}
