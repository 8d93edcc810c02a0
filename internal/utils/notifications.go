package utils

import (
	"fmt"
	"log"

	"hearthside_back_end/internal/models"
)

// SendOrderStatusEmail tells the customer about a fulfillment or payment
// status change. Best effort, called in a goroutine from the admin handlers.
func SendOrderStatusEmail(order models.Order, newStatus string) {
	if order.CustomerEmail == "" {
		return
	}

	subject := statusEmailSubject(newStatus)
	html := statusEmailHTML(order, newStatus)

	if err := SendEmail(order.CustomerEmail, subject, html, nil); err != nil {
		log.Printf("❌ Could not send status email for order %s: %v", order.OrderNumber, err)
		return
	}
	log.Printf("📧 Status email sent: %s → %s", newStatus, order.CustomerEmail)
}

func statusEmailSubject(status string) string {
	switch status {
	case models.PaymentStatusPaid:
		return "✅ Payment received - Hearthside Firewood"
	case models.OrderStatusProcessing:
		return "🪵 Your firewood is being prepared - Hearthside Firewood"
	case models.OrderStatusShipped:
		return "🚚 Your firewood is on its way - Hearthside Firewood"
	case models.OrderStatusDelivered:
		return "🔥 Your firewood has been delivered - Hearthside Firewood"
	case models.OrderStatusCancelled:
		return "❌ Order cancelled - Hearthside Firewood"
	case models.PaymentStatusRefunded:
		return "💰 Refund issued - Hearthside Firewood"
	default:
		return "📋 Order update - Hearthside Firewood"
	}
}

func statusMessage(status string) string {
	switch status {
	case models.PaymentStatusPaid:
		return "We received your payment. Your order is confirmed and we'll start getting your wood ready."
	case models.OrderStatusProcessing:
		return "Our crew is splitting, stacking and loading your order."
	case models.OrderStatusShipped:
		return "The truck is loaded and headed your way. Clear a spot for the drop!"
	case models.OrderStatusDelivered:
		return "Your firewood has been delivered. Enjoy the fire!"
	case models.OrderStatusCancelled:
		return "Your order has been cancelled. If you already paid, a refund is on its way."
	case models.PaymentStatusRefunded:
		return "Your refund has been processed. It should land in your account within a few business days."
	default:
		return "There's an update on your order."
	}
}

func statusIcon(status string) string {
	switch status {
	case models.PaymentStatusPaid:
		return "✅"
	case models.OrderStatusProcessing:
		return "🪵"
	case models.OrderStatusShipped:
		return "🚚"
	case models.OrderStatusDelivered:
		return "🔥"
	case models.OrderStatusCancelled:
		return "❌"
	case models.PaymentStatusRefunded:
		return "💰"
	default:
		return "📋"
	}
}

func statusEmailHTML(order models.Order, status string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order update</title></head>
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
					<td style="padding: 32px; text-align: center;">
						<div style="font-size: 48px;">%s</div>
						<h2>Order %s</h2>
						<p style="color: #444;">%s</p>
						<p style="color: #888; font-size: 13px;">Order total: %s</p>
					</td>
				</tr>
			</table>
		</td></tr>
	</table>
</body>
</html>`, statusIcon(status), order.OrderNumber, statusMessage(status), FormatCurrency(order.Total))
}
