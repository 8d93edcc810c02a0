package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"hearthside_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GeneratePaymentQR encodes a payment link or handle as a PNG QR, returned as
// a data URL ready for an <img src="...">.
func GeneratePaymentQR(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// BuildInvoiceHTML renders a self-contained invoice page for an order. The
// same markup feeds the PDF renderer and nothing else, so it stays inline.
func BuildInvoiceHTML(order models.Order, items []models.OrderItem) string {
	rows := ""
	for _, it := range items {
		rows += fmt.Sprintf(`
			<tr>
				<td>%s</td><td>%s</td><td style="text-align: center;">%d</td>
				<td style="text-align: right;">%s</td><td style="text-align: right;">%s</td>
			</tr>`, it.ProductName, it.ProductSKU, it.Quantity,
			FormatCurrency(it.UnitPrice), FormatCurrency(it.TotalPrice))
	}

	address := "Pickup at the yard"
	if order.DeliveryType == models.DeliveryTypeDelivery {
		address = fmt.Sprintf("%s<br>%s, %s %s", order.ShippingAddressLine1,
			order.ShippingCity, order.ShippingState, order.ShippingZip)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<style>
	body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
	h1 { color: #7c2d12; }
	table { width: 100%%; border-collapse: collapse; margin-top: 24px; }
	th { background: #f9f5f0; text-align: left; padding: 8px; }
	td { padding: 8px; border-bottom: 1px solid #eee; }
	.totals { width: 300px; margin-left: auto; margin-top: 24px; }
	.totals td { border: none; }
</style>
</head>
<body>
	<h1>🔥 Hearthside Firewood</h1>
	<p><strong>Invoice %s</strong><br>%s</p>
	<p><strong>Bill to</strong><br>%s<br>%s</p>
	<p><strong>Fulfillment</strong><br>%s</p>
	<table>
		<tr><th>Item</th><th>SKU</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
		%s
	</table>
	<table class="totals">
		<tr><td>Subtotal</td><td style="text-align: right;">%s</td></tr>
		<tr><td>Delivery fee</td><td style="text-align: right;">%s</td></tr>
		<tr><td>Tax</td><td style="text-align: right;">%s</td></tr>
		<tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>%s</strong></td></tr>
	</table>
</body>
</html>`,
		order.OrderNumber, FormatDate(order.CreatedAt),
		order.CustomerName, order.CustomerEmail, address, rows,
		FormatCurrency(order.Subtotal), FormatCurrency(order.DeliveryFee),
		FormatCurrency(order.Tax), FormatCurrency(order.Total))
}

// RenderInvoicePDF prints the invoice HTML to PDF through headless Chrome.
func RenderInvoicePDF(html string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return pdf, nil
}
