package checkout

import (
	"strings"
	"text/template"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(`SHOPPING HIFY
123 Mall Road, Lahore
support@shoppinghify.com
----------------------------------------
Invoice No: {{.InvoiceNo}}
Date:       {{.PlacedAt.Format "02 Jan 2006 15:04"}}
Customer:   {{.CustomerName}}
----------------------------------------
{{range .Lines}}{{.Name}}
  {{.Qty}} x Rs. {{.Price}} = Rs. {{.Subtotal}}
{{end}}----------------------------------------
Subtotal:    Rs. {{.Subtotal}}
Tax (5%):    Rs. {{.TaxAmount}}
Total Paid:  Rs. {{.GrandTotal}}
----------------------------------------
Payment:  {{.PaymentMethod}}
Delivery: {{.DeliveryMethod}}

Thank you for shopping with Shopping HIFY!
`))

// RenderReceipt produces the plain-text receipt for a placed order. Rendering
// to richer formats (print, PDF) is the presentation layer's job.
func RenderReceipt(order domain.Order) (string, error) {
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, order); err != nil {
		return "", err
	}
	return b.String(), nil
}
