// Package product serves the public storefront catalog.
package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const productColumns = `product_id, category_id, name, slug, description, price, compare_at_price, stock_quantity,
	sku, wood_type, unit_type, is_heat_treated, is_seasoned, is_kiln_dried, moisture_content,
	weight_lbs, dimensions, is_active, is_featured, image_urls, created_at, updated_at`

func scanProduct(scan func(...interface{}) error) (*models.Product, error) {
	var p models.Product
	err := scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice, &p.StockQuantity,
		&p.SKU, &p.WoodType, &p.UnitType, &p.IsHeatTreated, &p.IsSeasoned, &p.IsKilnDried, &p.MoistureContent,
		&p.WeightLbs, &p.Dimensions, &p.IsActive, &p.IsFeatured, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func loadActiveProducts(c *gin.Context) ([]models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).
		WithContext(c.Request.Context()).Iter()

	var products []models.Product
	for {
		var p models.Product
		if !iter.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice, &p.StockQuantity,
			&p.SKU, &p.WoodType, &p.UnitType, &p.IsHeatTreated, &p.IsSeasoned, &p.IsKilnDried, &p.MoistureContent,
			&p.WeightLbs, &p.Dimensions, &p.IsActive, &p.IsFeatured, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt) {
			break
		}
		if p.IsActive {
			products = append(products, p)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

//
// 🔵 GET /api/products?wood_type=&featured=&category=&search=
//
func GetAllProducts(c *gin.Context) {
	woodType := c.Query("wood_type")
	featured := c.Query("featured")
	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))
	filtered := woodType != "" || featured != "" || category != "" || search != ""

	// Unfiltered listing is the hot path, straight from Redis when warm.
	if !filtered {
		if data, err := cache.Get(cache.ProductsKey); err == nil && data != "" {
			var cached []models.Product
			if json.Unmarshal([]byte(data), &cached) == nil {
				c.JSON(http.StatusOK, gin.H{"products": cached})
				return
			}
		}
	}

	products, err := loadActiveProducts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load products"})
		return
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })

	if !filtered {
		if data, err := json.Marshal(products); err == nil {
			cache.Set(cache.ProductsKey, data, cache.ProductCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
		return
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if woodType != "" && p.WoodType != woodType {
			continue
		}
		if featured == "true" && !p.IsFeatured {
			continue
		}
		if category != "" && (p.CategoryID == nil || p.CategoryID.String() != category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

//
// 🔵 GET /api/products/:slug
//
func GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	q := session.Query(`SELECT `+productColumns+` FROM products WHERE slug = ? ALLOW FILTERING`, slug).
		WithContext(c.Request.Context())
	p, err := scanProduct(q.Scan)
	if errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

//
// 🔍 GET /api/products/search?q=
//
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	results, err := services.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search is temporarily unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
