package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/cart"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

var cartService = cart.NewService(store.NewScyllaCartStore(), store.NewScyllaProductStore())

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if data, err := cache.Get(cache.CartKey(userID)); err == nil && data != "" {
		var view models.CartView
		if json.Unmarshal([]byte(data), &view) == nil {
			c.JSON(http.StatusOK, view)
			return
		}
	}

	view, err := cartService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load your cart"})
		return
	}

	if data, err := json.Marshal(view); err == nil {
		cache.Set(cache.CartKey(userID), data, cache.CartCacheTTL)
	}
	c.JSON(http.StatusOK, view)
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Quantity  *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	productID, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	// Quantity omitted means "one more".
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	item, err := cartService.AddItem(c.Request.Context(), userID, productID, quantity)
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, store.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add to cart"})
		return
	}

	cache.InvalidateCart(userID)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

//
// 🟡 PUT /api/cart/items/:id
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	itemID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err = cartService.UpdateQuantity(c.Request.Context(), userID, itemID, input.Quantity)
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}

	cache.InvalidateCart(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

//
// 🔴 DELETE /api/cart/items/:id
//
func RemoveCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	itemID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	err = cartService.RemoveItem(c.Request.Context(), userID, itemID)
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not remove item"})
		return
	}

	cache.InvalidateCart(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

//
// 🔴 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := cartService.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear cart"})
		return
	}

	cache.InvalidateCart(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
