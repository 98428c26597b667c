package mailer

import (
	"fastivalle/src/lib"
	"fastivalle/src/types"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/wneessen/go-mail"
)

// SendOrderConfirmation emails the purchaser a summary of a completed
// order. Callers treat failure as non-fatal; the order is already
// committed by the time this runs.
func SendOrderConfirmation(to string, name string, order *types.OrderPayload) error {
	if os.Getenv("SMTP_HOST") == "" {
		log.Println("SMTP not configured, skipping order confirmation email")
		return nil
	}
	if to == "" {
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return err
	}
	if err := m.To(to); err != nil {
		return err
	}
	m.Subject(fmt.Sprintf("Your order %s is confirmed", order.OrderNumber))

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&b, "<p>Thanks for your purchase. Order <strong>%s</strong> is confirmed.</p>", order.OrderNumber)
	if order.Event != nil {
		fmt.Fprintf(&b, "<p>%s — %s, %s</p>", order.Event.Title, order.Event.Date, order.Event.Stage)
	}
	fmt.Fprintf(&b, "<p>%d x %s (%s)</p>", order.Quantity, order.TicketType, order.Category)
	fmt.Fprintf(&b, "<p>Total: %.2f %s</p>", order.TotalAmount, order.Currency)
	fmt.Fprintf(&b, "<p>Your tickets are available in the app under My Tickets.</p>")
	m.SetBodyString(mail.TypeTextHTML, b.String())

	c, err := lib.GetSMTPClient()
	if err != nil {
		return err
	}
	return c.DialAndSend(m)
}
