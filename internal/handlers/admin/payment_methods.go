package admin

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"hearthside_back_end/internal/cache"
	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"
	"hearthside_back_end/internal/services"
	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const methodColumns = `method_id, name, type, instructions, account_username, payment_link,
	qr_code_url, is_active, display_order, created_at, updated_at`

func getMethod(c *gin.Context, methodID gocql.UUID) (*models.PaymentMethod, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	var m models.PaymentMethod
	err = session.Query(`SELECT `+methodColumns+` FROM payment_methods WHERE method_id = ?`, methodID).
		WithContext(c.Request.Context()).Scan(&m.ID, &m.Name, &m.Type, &m.Instructions,
		&m.AccountUsername, &m.PaymentLink, &m.QRCodeURL, &m.IsActive, &m.DisplayOrder,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func writeMethod(c *gin.Context, m *models.PaymentMethod) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO payment_methods (`+methodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Type, m.Instructions, m.AccountUsername, m.PaymentLink,
		m.QRCodeURL, m.IsActive, m.DisplayOrder, m.CreatedAt, m.UpdatedAt).
		WithContext(c.Request.Context()).Exec()
}

//
// 🔵 GET /api/admin/payment-methods — active and inactive
//
func GetAllPaymentMethods(c *gin.Context) {
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
		methods = append(methods, m)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load payment methods"})
		return
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].DisplayOrder < methods[j].DisplayOrder })

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

//
// 🟢 POST /api/admin/payment-methods
//
func CreatePaymentMethod(c *gin.Context) {
	var input models.PaymentMethod
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if input.Type == "" {
		input.Type = models.PaymentTypeManual
	}

	now := time.Now().UTC()
	input.ID = gocql.TimeUUID()
	input.CreatedAt = now
	input.UpdatedAt = now

	if err := writeMethod(c, &input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create payment method"})
		return
	}

	cache.InvalidatePaymentMethods()
	c.JSON(http.StatusCreated, gin.H{"payment_method": input})
}

// PaymentMethodUpdate enumerates the editable payment method fields.
type PaymentMethodUpdate struct {
	Name            *string `json:"name"`
	Type            *string `json:"type"`
	Instructions    *string `json:"instructions"`
	AccountUsername *string `json:"account_username"`
	PaymentLink     *string `json:"payment_link"`
	IsActive        *bool   `json:"is_active"`
	DisplayOrder    *int    `json:"display_order"`
}

//
// 🟡 PUT /api/admin/payment-methods/:id
//
func UpdatePaymentMethod(c *gin.Context) {
	methodID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method id"})
		return
	}

	var input PaymentMethodUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	m, err := getMethod(c, methodID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load payment method"})
		return
	}

	if input.Name != nil {
		m.Name = *input.Name
	}
	if input.Type != nil {
		m.Type = *input.Type
	}
	if input.Instructions != nil {
		m.Instructions = *input.Instructions
	}
	if input.AccountUsername != nil {
		m.AccountUsername = *input.AccountUsername
	}
	if input.PaymentLink != nil {
		m.PaymentLink = *input.PaymentLink
	}
	if input.IsActive != nil {
		m.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		m.DisplayOrder = *input.DisplayOrder
	}
	m.UpdatedAt = time.Now().UTC()

	if err := writeMethod(c, m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update payment method"})
		return
	}

	cache.InvalidatePaymentMethods()
	c.JSON(http.StatusOK, gin.H{"payment_method": m})
}

//
// 🔴 DELETE /api/admin/payment-methods/:id
//
func DeletePaymentMethod(c *gin.Context) {
	methodID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method id"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete payment method"})
		return
	}

	if err := session.Query(`DELETE FROM payment_methods WHERE method_id = ?`, methodID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete payment method"})
		return
	}

	cache.InvalidatePaymentMethods()
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}

//
// 📱 POST /api/admin/payment-methods/:id/qr
//
// Renders the method's payment link (or account handle) as a QR PNG, stores
// it in MinIO and saves the URL on the method.
func GeneratePaymentMethodQR(c *gin.Context) {
	methodID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method id"})
		return
	}

	m, err := getMethod(c, methodID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load payment method"})
		return
	}

	content := m.PaymentLink
	if content == "" {
		content = m.AccountUsername
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Method has no payment link or account to encode"})
		return
	}

	dataURL, err := utils.GeneratePaymentQR(content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate QR code"})
		return
	}
	png, err := services.DecodeDataURLPNG(dataURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate QR code"})
		return
	}

	objectName := fmt.Sprintf("payment-methods/%s-qr.png", methodID)
	url, err := services.UploadBytes(c.Request.Context(), objectName, "image/png", png)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store QR code"})
		return
	}

	m.QRCodeURL = url
	m.UpdatedAt = time.Now().UTC()
	if err := writeMethod(c, m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save QR code"})
		return
	}

	cache.InvalidatePaymentMethods()
	c.JSON(http.StatusOK, gin.H{"qr_code_url": url})
}
