package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	PaymentTypeManual = "manual"
	PaymentTypeOnline = "online"
)

// PaymentMethod is an admin-configured, customer-facing payment option
// (bank transfer, Venmo handle, cash on pickup...). The checkout only reads
// active methods and stores a reference on the order.
type PaymentMethod struct {
	ID              gocql.UUID `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Instructions    string     `json:"instructions,omitempty"`
	AccountUsername string     `json:"account_username,omitempty"`
	PaymentLink     string     `json:"payment_link,omitempty"`
	QRCodeURL       string     `json:"qr_code_url,omitempty"`
	IsActive        bool       `json:"is_active"`
	DisplayOrder    int        `json:"display_order"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
