package admin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/services"
	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const productColumns = `product_id, category_id, name, slug, description, price, compare_at_price, stock_quantity,
	sku, wood_type, unit_type, is_heat_treated, is_seasoned, is_kiln_dried, moisture_content,
	weight_lbs, dimensions, is_active, is_featured, image_urls, created_at, updated_at`

func getProduct(c *gin.Context, productID gocql.UUID) (*models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productID).
		WithContext(c.Request.Context()).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CompareAtPrice, &p.StockQuantity,
		&p.SKU, &p.WoodType, &p.UnitType, &p.IsHeatTreated, &p.IsSeasoned, &p.IsKilnDried, &p.MoistureContent,
		&p.WeightLbs, &p.Dimensions, &p.IsActive, &p.IsFeatured, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func writeProduct(c *gin.Context, p *models.Product) error {
	session, err := database.GetCatalogSession()
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO products (`+productColumns+`) VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.CompareAtPrice, p.StockQuantity,
		p.SKU, p.WoodType, p.UnitType, p.IsHeatTreated, p.IsSeasoned, p.IsKilnDried, p.MoistureContent,
		p.WeightLbs, p.Dimensions, p.IsActive, p.IsFeatured, p.ImageURLs, p.CreatedAt, p.UpdatedAt).
		WithContext(c.Request.Context()).Exec()
}

//
// 🟢 POST /api/admin/products
//
func CreateProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Name == "" || input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and a positive price are required"})
		return
	}
	if input.UnitType != "" && !models.ValidUnitTypes[input.UnitType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown unit type"})
		return
	}

	now := time.Now().UTC()
	input.ID = gocql.TimeUUID()
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.Slug == "" {
		input.Slug = utils.Slugify(input.Name)
	}

	if err := writeProduct(c, &input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create product"})
		return
	}

	services.IndexProduct(input)
	cache.InvalidateCatalog(input.ID.String())
	c.JSON(http.StatusCreated, gin.H{"product": input})
}

// ProductUpdate enumerates the fields an admin edit may touch. Only non-nil
// fields are applied, so a partial JSON body can't zero out the rest of the
// row.
type ProductUpdate struct {
	CategoryID      *string   `json:"category_id"`
	Name            *string   `json:"name"`
	Slug            *string   `json:"slug"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	CompareAtPrice  *float64  `json:"compare_at_price"`
	StockQuantity   *int      `json:"stock_quantity"`
	SKU             *string   `json:"sku"`
	WoodType        *string   `json:"wood_type"`
	UnitType        *string   `json:"unit_type"`
	IsHeatTreated   *bool     `json:"is_heat_treated"`
	IsSeasoned      *bool     `json:"is_seasoned"`
	IsKilnDried     *bool     `json:"is_kiln_dried"`
	MoistureContent *float64  `json:"moisture_content"`
	WeightLbs       *float64  `json:"weight_lbs"`
	Dimensions      *string   `json:"dimensions"`
	IsActive        *bool     `json:"is_active"`
	IsFeatured      *bool     `json:"is_featured"`
	ImageURLs       *[]string `json:"image_urls"`
}

func (u ProductUpdate) apply(p *models.Product) {
	if u.CategoryID != nil {
		if id, err := gocql.ParseUUID(*u.CategoryID); err == nil {
			p.CategoryID = &id
		}
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Slug != nil {
		p.Slug = *u.Slug
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.CompareAtPrice != nil {
		p.CompareAtPrice = u.CompareAtPrice
	}
	if u.StockQuantity != nil {
		p.StockQuantity = *u.StockQuantity
	}
	if u.SKU != nil {
		p.SKU = *u.SKU
	}
	if u.WoodType != nil {
		p.WoodType = *u.WoodType
	}
	if u.UnitType != nil {
		p.UnitType = *u.UnitType
	}
	if u.IsHeatTreated != nil {
		p.IsHeatTreated = *u.IsHeatTreated
	}
	if u.IsSeasoned != nil {
		p.IsSeasoned = *u.IsSeasoned
	}
	if u.IsKilnDried != nil {
		p.IsKilnDried = *u.IsKilnDried
	}
	if u.MoistureContent != nil {
		p.MoistureContent = u.MoistureContent
	}
	if u.WeightLbs != nil {
		p.WeightLbs = u.WeightLbs
	}
	if u.Dimensions != nil {
		p.Dimensions = *u.Dimensions
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	if u.IsFeatured != nil {
		p.IsFeatured = *u.IsFeatured
	}
	if u.ImageURLs != nil {
		p.ImageURLs = *u.ImageURLs
	}
}

//
// 🟡 PUT /api/admin/products/:id
//
func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Price != nil && *input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	if input.UnitType != nil && !models.ValidUnitTypes[*input.UnitType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown unit type"})
		return
	}

	p, err := getProduct(c, productID)
	if errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	input.apply(p)
	p.UpdatedAt = time.Now().UTC()

	if err := writeProduct(c, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update product"})
		return
	}

	if p.IsActive {
		services.IndexProduct(*p)
	} else {
		services.RemoveProductFromIndex(p.ID.String())
	}
	cache.InvalidateCatalog(p.ID.String())
	c.JSON(http.StatusOK, gin.H{"product": p})
}

//
// 🔴 DELETE /api/admin/products/:id
//
func DeleteProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete product"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, productID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete product"})
		return
	}

	services.RemoveProductFromIndex(productID.String())
	cache.InvalidateCatalog(productID.String())
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

//
// 🖼️ POST /api/admin/products/:id/image
//
func UploadProductImage(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	p, err := getProduct(c, productID)
	if errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load product"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}

	objectName := fmt.Sprintf("products/%s/%s-%s", productID, uuid.NewString()[:8], file.Filename)
	url, err := services.UploadFile(c.Request.Context(), objectName, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store image"})
		return
	}

	p.ImageURLs = append(p.ImageURLs, url)
	p.UpdatedAt = time.Now().UTC()
	if err := writeProduct(c, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save image"})
		return
	}

	services.IndexProduct(*p)
	cache.InvalidateCatalog(p.ID.String())
	c.JSON(http.StatusOK, gin.H{"image_url": url, "product": p})
}
