package libs

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"quickbite/config"
	"quickbite/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	if !cfg.SMTPConfigured() {
		return nil, errors.New("SMTP configuration missing")
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}, nil
}

func (m *Mailer) SendOrderConfirmation(to string, order models.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - QuickBite", order.ID))
	msg.SetBody("text/html", orderConfirmationBody(order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func orderConfirmationBody(order models.Order) string {
	var rows strings.Builder
	for _, it := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%d &times; %s</td><td style=\"text-align:right\">$%s</td></tr>\n",
			it.Quantity, html.EscapeString(it.Name), it.TotalPrice.StringFixed(2))
	}

	discount := ""
	if order.Discount.IsPositive() {
		discount = fmt.Sprintf("<p><strong>Discount (%s):</strong> -$%s</p>",
			html.EscapeString(order.PromoCode), order.Discount.StringFixed(2))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #f97316; text-align: center; }
        .order-box { background-color: #fff7ed; padding: 20px; margin: 20px 0; border-radius: 8px; }
        table { width: 100%%; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">QuickBite</div>
        <h2>Thanks for your order from %s!</h2>
        <div class="order-box">
            <p><strong>Order Number:</strong> %s</p>
            <table>%s</table>
            <p><strong>Subtotal:</strong> $%s</p>
            <p><strong>Delivery fee:</strong> $%s</p>
            <p><strong>Service fee:</strong> $%s</p>
            %s
            <p><strong>Total:</strong> $%s</p>
            <p><strong>Estimated delivery:</strong> %s</p>
        </div>
        <p>We'll keep you posted as your order moves along.</p>
    </div>
</body>
</html>
`,
		html.EscapeString(order.RestaurantName),
		order.ID,
		rows.String(),
		order.Subtotal.StringFixed(2),
		order.DeliveryFee.StringFixed(2),
		order.ServiceFee.StringFixed(2),
		discount,
		order.Total.StringFixed(2),
		order.EstimatedDeliveryTime.Format("15:04 MST"),
	)
}
