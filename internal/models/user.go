package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Profile mirrors what the external auth provider knows about a user, plus the
// storefront's own fields (default address, saved coordinates for delivery
// quotes). Identity itself lives with the provider; this row is ours.
type Profile struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role"`
	AddressLine1 string     `json:"address_line1,omitempty"`
	AddressLine2 string     `json:"address_line2,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	ZipCode      string     `json:"zip_code,omitempty"`
	Country      string     `json:"country,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
