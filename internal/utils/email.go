package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"hearthside_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendEmail delivers an HTML email through the configured SMTP relay,
// optionally attaching an invoice PDF.
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "orders@hearthsidefirewood.com"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("invoice.pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// SendOrderConfirmationEmail emails the customer after a successful checkout.
// Callers run it in a goroutine; a failed email never fails an order.
func SendOrderConfirmationEmail(order models.Order, items []models.OrderItem) {
	if order.CustomerEmail == "" {
		return
	}
	html := GenerateOrderConfirmationHTML(order, items)
	subject := fmt.Sprintf("🔥 Order %s confirmed - Hearthside Firewood", order.OrderNumber)
	if err := SendEmail(order.CustomerEmail, subject, html, nil); err != nil {
		log.Printf("❌ Could not send confirmation for order %s: %v", order.OrderNumber, err)
		return
	}
	log.Printf("📧 Confirmation sent for order %s → %s", order.OrderNumber, order.CustomerEmail)
}

// GenerateOrderConfirmationHTML builds the confirmation email body.
func GenerateOrderConfirmationHTML(order models.Order, items []models.OrderItem) string {
	itemsHTML := ""
	for _, item := range items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`, item.ProductName, item.Quantity,
			FormatCurrency(item.UnitPrice), FormatCurrency(item.TotalPrice))
	}

	deliveryLine := "Pickup at the yard"
	if order.DeliveryType == models.DeliveryTypeDelivery {
		deliveryLine = fmt.Sprintf("Delivery to %s, %s %s",
			order.ShippingCity, order.ShippingState, order.ShippingZip)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
	<table role="presentation" style="width: 100%%; border-collapse: collapse;">
		<tr><td style="padding: 40px 20px;">
			<table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
				<tr>
					<td style="background-color: #7c2d12; border-radius: 12px 12px 0 0; padding: 32px; text-align: center;">
						<h1 style="color: #ffffff; margin: 0;">🔥 Hearthside Firewood</h1>
					</td>
				</tr>
				<tr>
					<td style="padding: 32px;">
						<h2 style="margin-top: 0;">Thanks for your order, %s!</h2>
						<p>Your order <strong>%s</strong> was placed on %s.</p>
						<p>%s</p>
						<table style="width: 100%%; border-collapse: collapse; margin: 24px 0;">
							<tr style="background-color: #f9f5f0;">
								<th style="padding: 8px; text-align: left;">Item</th>
								<th style="padding: 8px;">Qty</th>
								<th style="padding: 8px; text-align: right;">Price</th>
								<th style="padding: 8px; text-align: right;">Total</th>
							</tr>
							%s
						</table>
						<table style="width: 100%%;">
							<tr><td>Subtotal</td><td style="text-align: right;">%s</td></tr>
							<tr><td>Delivery fee</td><td style="text-align: right;">%s</td></tr>
							<tr><td>Tax</td><td style="text-align: right;">%s</td></tr>
							<tr><td style="font-weight: bold; padding-top: 8px;">Total</td>
								<td style="font-weight: bold; text-align: right; padding-top: 8px;">%s</td></tr>
						</table>
						<p style="color: #666; font-size: 13px;">We'll be in touch to schedule your %s. Stack it dry, burn it hot!</p>
					</td>
				</tr>
			</table>
		</td></tr>
	</table>
</body>
</html>`,
		order.CustomerName, order.OrderNumber, FormatDate(order.CreatedAt),
		deliveryLine, itemsHTML,
		FormatCurrency(order.Subtotal), FormatCurrency(order.DeliveryFee),
		FormatCurrency(order.Tax), FormatCurrency(order.Total), order.DeliveryType)
}
