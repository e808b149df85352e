// internal/domain/receipt/pdf.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/pos-terminal/internal/domain/order"
)

// PDFService turns receipt documents into printable PDFs
type PDFService struct {
	renderer *Renderer
}

// NewPDFService creates a PDF service on top of the renderer
func NewPDFService(renderer *Renderer) *PDFService {
	return &PDFService{renderer: renderer}
}

// GenerateReceipt generates a PDF receipt for a completed order
func (s *PDFService) GenerateReceipt(o *order.CompletedOrder) (*bytes.Buffer, error) {
	doc := s.renderer.Render(o)

	htmlContent, err := s.generateHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)
	pdfg.Grayscale.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *PDFService) generateHTML(doc *Document) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Receipt HTML template, styled like a thermal-printer ticket
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>ใบเสร็จ {{.OrderID}}</title>
    <style>
        body {
            font-family: 'Courier New', monospace;
            max-width: 320px;
            margin: 0 auto;
            padding: 16px;
            color: #000;
            font-size: 13px;
        }
        .store-header {
            text-align: center;
            margin-bottom: 8px;
        }
        .store-name {
            font-size: 18px;
            font-weight: bold;
        }
        .tagline {
            font-size: 12px;
            color: #444;
        }
        .divider {
            border-top: 1px dashed #000;
            margin: 8px 0;
        }
        .meta p {
            margin: 2px 0;
        }
        .items td {
            padding: 2px 0;
            vertical-align: top;
        }
        .items {
            width: 100%;
            border-collapse: collapse;
        }
        .amount {
            text-align: right;
            white-space: nowrap;
        }
        .totals {
            width: 100%;
        }
        .totals td {
            padding: 2px 0;
        }
        .grand-total {
            font-size: 16px;
            font-weight: bold;
        }
        .footer {
            text-align: center;
            margin-top: 12px;
        }
    </style>
</head>
<body>
    <div class="store-header">
        <div class="store-name">{{.StoreName}}</div>
        {{if .Tagline}}<div class="tagline">{{.Tagline}}</div>{{end}}
        {{if .Address}}<div class="tagline">{{.Address}}</div>{{end}}
        {{if .Phone}}<div class="tagline">โทร. {{.Phone}}</div>{{end}}
    </div>

    <div class="divider"></div>

    <div class="meta">
        <p>เลขที่: {{.OrderID}}</p>
        <p>วันที่: {{.Timestamp}}</p>
        {{if .CustomerName}}<p>ลูกค้า: {{.CustomerName}}</p>{{end}}
    </div>

    <div class="divider"></div>

    <table class="items">
        {{range .Lines}}
        <tr>
            <td colspan="2">{{.Name}}</td>
        </tr>
        <tr>
            <td>&nbsp;&nbsp;{{.UnitPrice}} x {{.Quantity}}</td>
            <td class="amount">{{.Subtotal}}</td>
        </tr>
        {{end}}
    </table>

    <div class="divider"></div>

    <table class="totals">
        <tr class="grand-total">
            <td>รวมทั้งสิ้น</td>
            <td class="amount">{{.Total}}</td>
        </tr>
        <tr>
            <td>ชำระโดย</td>
            <td class="amount">{{.PaymentLabel}}</td>
        </tr>
        {{if .Tendered}}
        <tr>
            <td>รับเงิน</td>
            <td class="amount">{{.Tendered}}</td>
        </tr>
        {{end}}
        {{if .Change}}
        <tr>
            <td>เงินทอน</td>
            <td class="amount">{{.Change}}</td>
        </tr>
        {{end}}
    </table>

    <div class="divider"></div>

    <div class="footer">{{.Footer}}</div>
</body>
</html>
`
