// Package receipt renders one HTML document per completed order,
// keyed by order id, and converts it to PDF when wkhtmltopdf is on the
// PATH. It consumes read-only order snapshots and never feeds back
// into store state.
package receipt

import (
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"

	"supershop/m/domain"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(`<html><head>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; margin: 0; padding: 20px; }
.container { width: 800px; margin: 0 auto; border: 1px solid #00a651; padding: 20px; }
.invoice-title { color: #00a651; font-size: 24px; margin-bottom: 10px; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 10px; border: 1px solid #ddd; text-align: left; }
th { background-color: #00a651; color: white; }
.totals { text-align: right; margin-top: 20px; }
</style>
</head><body>
<div class="container">
<div class="invoice-title">SUPER SHOP - RECEIPT</div>
<p>Order ID: {{.Order.ID}}<br>
Date: {{.Order.Date}}<br>
Customer: {{.Order.CustomerPhone}}<br>
Served by: {{.OperatorName}}<br>
Payment: {{.Order.PaymentMethod}}{{if .Order.TransactionID}} (txn {{.Order.TransactionID}}){{end}}</p>
<table>
<tr><th>Product</th><th>Quantity</th><th>Unit Price</th><th>Subtotal</th></tr>
{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .UnitPrice}}</td><td>{{printf "%.2f" .Subtotal}}</td></tr>
{{end}}</table>
<div class="totals">
<p>Gross Total: {{printf "%.2f" .Order.Gross}} TK<br>
Discount: {{printf "%.2f" .Order.Discount}} TK<br>
<strong>Payable: {{printf "%.2f" .Order.TotalAmount}} TK</strong></p>
</div>
<p>Thank you for shopping with us!</p>
</div>
</body></html>
`))

// ReceiptLine is one rendered row; names come from the catalog at
// render time since the ledger stores only product ids.
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

type receiptData struct {
	Order        domain.Order
	OperatorName string
	Lines        []ReceiptLine
}

// Generate writes receipts/receipt_<id>.html and attempts PDF
// conversion. The returned path is the HTML document; PDF conversion
// failure is not an error since wkhtmltopdf is optional.
func Generate(dir string, order domain.Order, operatorName string, lines []ReceiptLine) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir %s: %v", domain.ErrPersistence, dir, err)
	}

	htmlPath := filepath.Join(dir, fmt.Sprintf("receipt_%d.html", order.ID))
	file, err := os.Create(htmlPath)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", domain.ErrPersistence, htmlPath, err)
	}
	defer file.Close()

	data := receiptData{Order: order, OperatorName: operatorName, Lines: lines}
	if err := receiptTmpl.Execute(file, data); err != nil {
		return "", fmt.Errorf("%w: render %s: %v", domain.ErrPersistence, htmlPath, err)
	}

	if _, err := exec.LookPath("wkhtmltopdf"); err == nil {
		pdfPath := filepath.Join(dir, fmt.Sprintf("receipt_%d.pdf", order.ID))
		_ = exec.Command("wkhtmltopdf", htmlPath, pdfPath).Run()
	}

	return htmlPath, nil
}
