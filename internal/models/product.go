package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Unit types firewood can be sold in.
const (
	UnitCord     = "cord"
	UnitFaceCord = "face_cord"
	UnitBundle   = "bundle"
	UnitRack     = "rack"
)

var ValidUnitTypes = map[string]bool{
	UnitCord:     true,
	UnitFaceCord: true,
	UnitBundle:   true,
	UnitRack:     true,
}

type Product struct {
	ID              gocql.UUID  `json:"id"`
	CategoryID      *gocql.UUID `json:"category_id,omitempty"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Description     string      `json:"description,omitempty"`
	Price           float64     `json:"price"`
	CompareAtPrice  *float64    `json:"compare_at_price,omitempty"`
	StockQuantity   int         `json:"stock_quantity"`
	SKU             string      `json:"sku,omitempty"`
	WoodType        string      `json:"wood_type"`
	UnitType        string      `json:"unit_type"`
	IsHeatTreated   bool        `json:"is_heat_treated"`
	IsSeasoned      bool        `json:"is_seasoned"`
	IsKilnDried     bool        `json:"is_kiln_dried"`
	MoistureContent *float64    `json:"moisture_content,omitempty"`
	WeightLbs       *float64    `json:"weight_lbs,omitempty"`
	Dimensions      string      `json:"dimensions,omitempty"`
	IsActive        bool        `json:"is_active"`
	IsFeatured      bool        `json:"is_featured"`
	ImageURLs       []string    `json:"image_urls"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
