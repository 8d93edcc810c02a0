package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/orders"
	"hearthside_back_end/internal/services"
	"hearthside_back_end/internal/store"
	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

var (
	orderStore   = store.NewScyllaOrderStore()
	orderService = orders.NewService(orderStore, cartService)
)

//
// 🟢 POST /api/orders — checkout
//
func PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// Double-click guard: one checkout in flight per user.
	if !cache.AcquireCheckoutLock(userID) {
		c.JSON(http.StatusConflict, gin.H{"error": "A checkout is already in progress"})
		return
	}
	defer cache.ReleaseCheckoutLock(userID)

	var input struct {
		CustomerEmail        string  `json:"customer_email"`
		CustomerName         string  `json:"customer_name"`
		CustomerPhone        string  `json:"customer_phone"`
		DeliveryType         string  `json:"delivery_type"`
		ShippingAddressLine1 string  `json:"shipping_address_line1"`
		ShippingAddressLine2 string  `json:"shipping_address_line2"`
		ShippingCity         string  `json:"shipping_city"`
		ShippingState        string  `json:"shipping_state"`
		ShippingZip          string  `json:"shipping_zip"`
		ShippingCountry      string  `json:"shipping_country"`
		PaymentMethodID      *string `json:"payment_method_id"`
		PaymentProofURL      string  `json:"payment_proof_url"`
		CustomerNotes        string  `json:"customer_notes"`

		DeliveryDistanceMiles *float64 `json:"delivery_distance_miles"`
		DeliveryLatitude      *float64 `json:"delivery_latitude"`
		DeliveryLongitude     *float64 `json:"delivery_longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.CustomerEmail == "" || input.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}
	if input.DeliveryType == models.DeliveryTypeDelivery && !utils.IsValidZipCode(input.ShippingZip) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid ZIP code"})
		return
	}
	if input.PaymentMethodID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a payment method"})
		return
	}

	in := orders.PlaceOrderInput{
		CustomerEmail:        input.CustomerEmail,
		CustomerName:         input.CustomerName,
		CustomerPhone:        input.CustomerPhone,
		DeliveryType:         input.DeliveryType,
		ShippingAddressLine1: input.ShippingAddressLine1,
		ShippingAddressLine2: input.ShippingAddressLine2,
		ShippingCity:         input.ShippingCity,
		ShippingState:        input.ShippingState,
		ShippingZip:          input.ShippingZip,
		ShippingCountry:      input.ShippingCountry,
		PaymentProofURL:      input.PaymentProofURL,
		CustomerNotes:        input.CustomerNotes,

		DeliveryDistanceMiles: input.DeliveryDistanceMiles,
		DeliveryLatitude:      input.DeliveryLatitude,
		DeliveryLongitude:     input.DeliveryLongitude,
	}
	if input.PaymentMethodID != nil {
		pmID, err := gocql.ParseUUID(*input.PaymentMethodID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method id"})
			return
		}
		in.PaymentMethodID = &pmID
	}

	order, err := orderService.PlaceOrder(c.Request.Context(), userID, in)
	switch {
	case errors.Is(err, orders.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not place your order, please try again"})
		return
	}

	cache.InvalidateCart(userID)
	cache.InvalidateOrders(userID)

	items, itemsErr := orderStore.Items(c.Request.Context(), order.ID)
	if itemsErr == nil {
		go utils.SendOrderConfirmationEmail(*order, items)
	}

	c.JSON(http.StatusCreated, gin.H{"order": order, "items": items})
}

//
// 🔵 GET /api/orders — my orders, newest first
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if data, err := cache.Get(cache.UserOrdersKey(userID)); err == nil && data != "" {
		var cached []models.Order
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, gin.H{"orders": cached})
			return
		}
	}

	list, err := orderStore.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load your orders"})
		return
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	if data, err := json.Marshal(list); err == nil {
		cache.Set(cache.UserOrdersKey(userID), data, cache.OrdersCacheTTL)
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

//
// 🔵 GET /api/orders/:id
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

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
	if order.UserID != userID {
		// Same response as not-found so order ids can't be probed.
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
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
// 🟡 POST /api/orders/:id/payment-proof
//
func UploadPaymentProof(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := orderStore.Get(c.Request.Context(), orderID)
	if errors.Is(err, store.ErrOrderNotFound) || (err == nil && order.UserID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load order"})
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing proof file"})
		return
	}

	objectName := fmt.Sprintf("payment-proofs/%s/%s-%s", orderID, uuid.NewString()[:8], file.Filename)
	url, err := services.UploadFile(c.Request.Context(), objectName, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store payment proof"})
		return
	}

	if err := setPaymentProofURL(c, orderID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save payment proof"})
		return
	}

	cache.InvalidateOrders(userID)
	c.JSON(http.StatusOK, gin.H{"payment_proof_url": url})
}

func setPaymentProofURL(c *gin.Context, orderID gocql.UUID, url string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`UPDATE orders SET payment_proof_url = ? WHERE order_id = ?`, url, orderID).
		WithContext(c.Request.Context()).Exec()
}
