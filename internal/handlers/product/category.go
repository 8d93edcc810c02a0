package product

import (
	"encoding/json"
	"net/http"
	"sort"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

//
// 🔵 GET /api/categories
//
func GetAllCategories(c *gin.Context) {
	if data, err := cache.Get(cache.CategoriesKey); err == nil && data != "" {
		var cached []models.Category
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"categories": cached})
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load categories"})
		return
	}

	iter := session.Query(`SELECT category_id, name, slug, description, image_url, display_order, is_active, created_at FROM categories`).
		WithContext(c.Request.Context()).Iter()

	var cats []models.Category
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
		&cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt) {
		if cat.IsActive {
			cats = append(cats, cat)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load categories"})
		return
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].DisplayOrder < cats[j].DisplayOrder })

	if data, err := json.Marshal(cats); err == nil {
		cache.Set(cache.CategoriesKey, data, cache.ProductCacheTTL)
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}
