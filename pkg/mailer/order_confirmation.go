package mailer

import (
	"bytes"
	"text/template"
)

const orderConfirmationTmpl = `Hi {{.Name}},

Thanks for your order!

Order reference: {{.OrderID}}
Payment reference: {{.PaymentRef}}
Total: {{printf "%.2f" .Amount}} {{.Currency}}
Shipping to: {{.Address}}

We'll let you know as soon as it ships.

The Velora team
`

var orderConfirmation = template.Must(template.New("order_confirmation").Parse(orderConfirmationTmpl))

// RenderOrderConfirmation renders the plain-text order confirmation body.
func RenderOrderConfirmation(data map[string]any) (subject, text string, err error) {
	var buf bytes.Buffer
	if err := orderConfirmation.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return "Your Velora order is confirmed", buf.String(), nil
}
