// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(s.invoiceData(o))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// InvoiceFilename returns the download name for an order's invoice
func InvoiceFilename(o *order.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", o.ShortID())
}

func (s *Service) invoiceData(o *order.Order) InvoiceData {
	currency := o.Currency
	if currency == "" {
		currency = s.config.Store.Currency
	}
	money := func(v int64) string { return fmt.Sprintf("%s %d", currency, v) }

	data := InvoiceData{
		InvoiceNumber: "INV-" + o.ShortID(),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		OrderID:       o.ID,
		OrderDate:     o.CreatedAt.Format("January 2, 2006"),
		Status:        strings.ToUpper(string(o.Status)),
		Customer:      o.Customer,
		PaymentMethod: paymentLabel(o.Customer.PaymentMethod),
		Subtotal:      money(o.Subtotal),
		Shipping:      money(o.Shipping),
		Total:         money(o.Total),
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
			Website: s.config.Company.Website,
		},
	}
	if o.Shipping == 0 {
		data.Shipping = "Free"
	}
	for _, item := range o.Items {
		data.Lines = append(data.Lines, InvoiceLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    money(item.Price),
			Total:    money(item.LineTotal()),
		})
	}
	return data
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func paymentLabel(method string) string {
	switch method {
	case order.PaymentMethodCash:
		return "Cash on Delivery"
	case order.PaymentMethodBank:
		return "Bank Transfer"
	}
	return method
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	OrderID       string
	OrderDate     string
	Status        string
	Customer      order.Customer
	PaymentMethod string
	Lines         []InvoiceLine
	Subtotal      string
	Shipping      string
	Total         string
	Company       CompanyInfo
}

// InvoiceLine is a preformatted order line
type InvoiceLine struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-info { text-align: right; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #16a34a; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right !important; }
        .totals { float: right; width: 300px; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; }
        .total-row td { font-size: 18px; font-weight: bold; border-top: 2px solid #333; }
        .footer { clear: both; margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.OrderID}}</p>
            <p><strong>Order Date:</strong> {{.OrderDate}}</p>
            <p><strong>Status:</strong> {{.Status}}</p>
        </div>
    </div>

    <div>
        <div class="section-title">Bill To:</div>
        <p><strong>{{.Customer.FirstName}} {{.Customer.LastName}}</strong></p>
        <p>{{.Customer.Address}}</p>
        <p>{{.Customer.City}} {{.Customer.PostalCode}}, {{.Customer.Country}}</p>
        <p>Phone: {{.Customer.Phone}}</p>
        <p>Email: {{.Customer.Email}}</p>
        <p>Payment: {{.PaymentMethod}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Price}}</td><td class="num">{{.Total}}</td></tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td class="num">{{.Subtotal}}</td></tr>
            <tr><td>Shipping:</td><td class="num">{{.Shipping}}</td></tr>
            <tr class="total-row"><td>Total:</td><td class="num">{{.Total}}</td></tr>
        </table>
    </div>

    <div class="footer">
        <p>Thank you for shopping with {{.Company.Name}}!</p>
        {{if .Company.Email}}<p>Questions about this invoice? Contact us at {{.Company.Email}}</p>{{end}}
    </div>
</body>
</html>
`
