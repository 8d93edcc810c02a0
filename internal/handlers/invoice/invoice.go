// Package invoice renders order invoices as downloadable PDFs.
package invoice

import (
	"errors"
	"fmt"
	"net/http"

	"hearthside_back_end/internal/store"
	"hearthside_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

var orderStore = store.NewScyllaOrderStore()

//
// 📄 GET /api/admin/orders/:id/invoice
//
func DownloadInvoice(c *gin.Context) {
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

	html := utils.BuildInvoiceHTML(*order, items)
	pdf, err := utils.RenderInvoicePDF(html)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render invoice"})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", order.OrderNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
