package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"giftwrap_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendEmail envoie un e-mail HTML via le SMTP configuré. Sans SMTP_HOST,
// l'envoi est ignoré silencieusement (environnements de dev).
func SendEmail(to, subject, htmlBody string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP non configuré — e-mail ignoré :", subject)
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@giftwrap.app"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderConfirmationEmail notifie l'acheteur que son paiement est
// confirmé, avec le détail de la commande et un QR de suivi.
func SendOrderConfirmationEmail(order models.Order, qrDataURI string) error {
	if order.UserEmail == "" {
		return nil
	}

	html := generateOrderHTML(order, qrDataURI)
	if err := SendEmail(order.UserEmail, "🎁 Order confirmed - GiftWrap", html); err != nil {
		log.Printf("❌ Erreur envoi e-mail de confirmation: %v", err)
		return err
	}

	log.Printf("📧 Confirmation envoyée à %s (commande %s)", order.UserEmail, order.ID)
	return nil
}

// SendOrderDeliveredEmail notifie l'acheteur que sa commande est livrée.
func SendOrderDeliveredEmail(order models.Order) error {
	if order.UserEmail == "" {
		return nil
	}
	html := generateOrderHTML(order, "")
	return SendEmail(order.UserEmail, "📦 Order delivered - GiftWrap", html)
}

func generateOrderHTML(order models.Order, qrDataURI string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f BDT</td>
				<td>%.2f BDT</td>
			</tr>`, item.Name, item.Qty, item.Price, item.Price*float64(item.Qty))
	}

	qrHTML := ""
	if qrDataURI != "" {
		qrHTML = fmt.Sprintf(`<p style="text-align:center"><img src="%s" alt="QR" width="160"/></p>`, qrDataURI)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2 style="color: #d0021b;">GiftWrap</h2>
	<p>Hi %s,</p>
	<p>Thank you for your order. Here is a summary:</p>
	<table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
		<tr style="background: #FFF3E0;">
			<th>Product</th><th>Qty</th><th>Price</th><th>Subtotal</th>
		</tr>%s
	</table>
	<p><strong>Total: %.2f BDT</strong></p>
	<p>Delivery to: %s, %s (%s)</p>
	%s
</body>
</html>`, order.Receiver, itemsHTML, order.Total, order.Receiver, order.Address, order.Phone, qrHTML)
}
