// Package payment serves the manual payment methods shown at checkout.
package payment

import (
	"encoding/json"
	"net/http"
	"sort"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const methodColumns = `method_id, name, type, instructions, account_username, payment_link,
	qr_code_url, is_active, display_order, created_at, updated_at`

//
// 💳 GET /api/payment-methods
//
func GetActivePaymentMethods(c *gin.Context) {
	if data, err := cache.Get(cache.PaymentMethodsKey); err == nil && data != "" {
		var cached []models.PaymentMethod
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"payment_methods": cached})
			return
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load payment methods"})
		return
	}

	iter := session.Query(`SELECT ` + methodColumns + ` FROM payment_methods`).
		WithContext(c.Request.Context()).Iter()

	var methods []models.PaymentMethod
	var m models.PaymentMethod
	for iter.Scan(&m.ID, &m.Name, &m.Type, &m.Instructions, &m.AccountUsername, &m.PaymentLink,
		&m.QRCodeURL, &m.IsActive, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt) {
		if m.IsActive {
			methods = append(methods, m)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load payment methods"})
		return
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].DisplayOrder < methods[j].DisplayOrder })

	if data, err := json.Marshal(methods); err == nil {
		cache.Set(cache.PaymentMethodsKey, data, cache.MethodsCacheTTL)
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}
