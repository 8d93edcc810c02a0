// Package admin holds the back-office handlers. Everything here sits behind
// AuthRequired + RequireAdmin.
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/cart"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/orders"
	"hearthside_back_end/internal/store"
	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

var (
	orderStore   = store.NewScyllaOrderStore()
	orderService = orders.NewService(orderStore,
		cart.NewService(store.NewScyllaCartStore(), store.NewScyllaProductStore()))
)

//
// 🔵 GET /api/admin/orders
//
func GetAllOrders(c *gin.Context) {
	if data, err := cache.Get(cache.AdminOrdersKey); err == nil && data != "" {
		var cached []models.Order
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"orders": cached})
			return
		}
	}

	list, err := orderStore.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load orders"})
		return
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	if data, err := json.Marshal(list); err == nil {
		cache.Set(cache.AdminOrdersKey, data, cache.OrdersCacheTTL)
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

//
// 🔵 GET /api/admin/orders/:id
//
func GetOrderDetail(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := orderStore.Get(c.Request.Context(), orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load order"})
		return
	}

	items, err := orderStore.Items(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

//
// 🟡 PUT /api/admin/orders/:id/status
//
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := orderService.SetStatus(c.Request.Context(), orderID, input.Status)
	switch {
	case errors.Is(err, orders.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update order status"})
		return
	}

	cache.InvalidateOrders(order.UserID)
	go utils.SendOrderStatusEmail(*order, input.Status)

	c.JSON(http.StatusOK, gin.H{"order": order})
}

//
// 🟡 PUT /api/admin/orders/:id/payment-status
//
func UpdatePaymentStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := orderService.SetPaymentStatus(c.Request.Context(), orderID, input.PaymentStatus)
	switch {
	case errors.Is(err, orders.ErrInvalidPaymentStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update payment status"})
		return
	}

	cache.InvalidateOrders(order.UserID)
	go utils.SendOrderStatusEmail(*order, input.PaymentStatus)

	c.JSON(http.StatusOK, gin.H{"order": order})
}

//
// 📊 GET /api/admin/orders/stats
//
func GetOrderStats(c *gin.Context) {
	list, err := orderStore.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load orders"})
		return
	}

	countByStatus := map[string]int{}
	revenueByStatus := map[string]float64{}
	var totalRevenue float64
	for _, o := range list {
		countByStatus[o.Status]++
		revenueByStatus[o.Status] += o.Total
		if o.PaymentStatus == models.PaymentStatusPaid {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":      len(list),
		"count_by_status":   countByStatus,
		"revenue_by_status": revenueByStatus,
		"paid_revenue":      totalRevenue,
	})
}

//
// 🧹 POST /api/admin/orders/reconcile
//
// Cleans up order rows whose item insert failed and whose rollback failed
// too. Only touches orders past the age cutoff so in-flight checkouts are
// never swept.
func ReconcileOrders(c *gin.Context) {
	minutes := 30
	if v := c.Query("older_than_minutes"); v != "" {
		if n, err := time.ParseDuration(v + "m"); err == nil && n > 0 {
			minutes = int(n.Minutes())
		}
	}

	cutoff := time.Now().Add(-time.Duration(minutes) * time.Minute)
	removed, err := orderService.ReconcileOrphans(c.Request.Context(), cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed", "removed": removed})
		return
	}

	cache.Delete(cache.AdminOrdersKey)
	c.JSON(http.StatusOK, gin.H{"removed": removed, "count": len(removed)})
}
