package admin

import (
	"net/http"
	"time"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

//
// 🟢 POST /api/admin/categories
//
func CreateCategory(c *gin.Context) {
	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	input.ID = gocql.TimeUUID()
	input.CreatedAt = time.Now().UTC()
	if input.Slug == "" {
		input.Slug = utils.Slugify(input.Name)
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create category"})
		return
	}

	if err := session.Query(`INSERT INTO categories (category_id, name, slug, description, image_url, display_order, is_active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		input.ID, input.Name, input.Slug, input.Description, input.ImageURL,
		input.DisplayOrder, input.IsActive, input.CreatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create category"})
		return
	}

	cache.InvalidateCatalog()
	c.JSON(http.StatusCreated, gin.H{"category": input})
}

// CategoryUpdate enumerates the editable category fields.
type CategoryUpdate struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

//
// 🟡 PUT /api/admin/categories/:id
//
func UpdateCategory(c *gin.Context) {
	categoryID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var input CategoryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update category"})
		return
	}

	var cat models.Category
	err = session.Query(`SELECT category_id, name, slug, description, image_url, display_order, is_active, created_at
			FROM categories WHERE category_id = ?`, categoryID).
		WithContext(c.Request.Context()).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description,
		&cat.ImageURL, &cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load category"})
		return
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Slug != nil {
		cat.Slug = *input.Slug
	}
	if input.Description != nil {
		cat.Description = *input.Description
	}
	if input.ImageURL != nil {
		cat.ImageURL = *input.ImageURL
	}
	if input.DisplayOrder != nil {
		cat.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}

	if err := session.Query(`INSERT INTO categories (category_id, name, slug, description, image_url, display_order, is_active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.ImageURL,
		cat.DisplayOrder, cat.IsActive, cat.CreatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update category"})
		return
	}

	cache.InvalidateCatalog()
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

//
// 🔴 DELETE /api/admin/categories/:id
//
func DeleteCategory(c *gin.Context) {
	categoryID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete category"})
		return
	}

	if err := session.Query(`DELETE FROM categories WHERE category_id = ?`, categoryID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete category"})
		return
	}

	cache.InvalidateCatalog()
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
