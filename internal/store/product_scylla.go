package store

import (
	"context"
	"errors"

	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaProductStore reads products from the catalog keyspace. The checkout
// core never writes the catalog; admin handlers own that.
type ScyllaProductStore struct{}

func NewScyllaProductStore() *ScyllaProductStore { return &ScyllaProductStore{} }

func (s *ScyllaProductStore) Get(ctx context.Context, productID gocql.UUID) (*models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	p := models.Product{ID: productID}
	err = session.Query(`SELECT category_id, name, slug, description, price, compare_at_price, stock_quantity, sku,
			wood_type, unit_type, is_heat_treated, is_seasoned, is_kiln_dried, moisture_content,
			weight_lbs, dimensions, is_active, is_featured, image_urls, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).WithContext(ctx).Scan(
		&p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice, &p.StockQuantity, &p.SKU,
		&p.WoodType, &p.UnitType, &p.IsHeatTreated, &p.IsSeasoned, &p.IsKilnDried, &p.MoistureContent,
		&p.WeightLbs, &p.Dimensions, &p.IsActive, &p.IsFeatured, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
