// services/billing.go
package services

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"askbm-backend/models"
	"askbm-backend/utils"
)

// GST rate applied to every invoice, in percent.
const TaxRatePercent = 18

// CalculateTax returns round(amount * 18%) in whole currency units.
func CalculateTax(amount int64) int64 {
	return (amount*TaxRatePercent + 50) / 100
}

// NewInvoice builds an immutable invoice for an appointment. Each call
// yields a fresh id; invoices are never updated.
func NewInvoice(appointmentID, customerID string, amount int64, method models.PaymentMethod) models.Invoice {
	now := time.Now()
	tax := CalculateTax(amount)
	return models.Invoice{
		ID:            "INV-" + now.Format("20060102") + "-" + strings.ToUpper(utils.GenerateRandomString(6)),
		AppointmentID: appointmentID,
		CustomerID:    customerID,
		Date:          now.Format("2006-01-02"),
		Amount:        amount,
		Tax:           tax,
		Total:         amount + tax,
		Method:        method,
		GeneratedAt:   now,
	}
}

// PaymentQRCodeURL returns an image URL encoding a UPI pay-to URI for the
// invoice total.
func PaymentQRCodeURL(profile models.BusinessProfile, inv models.Invoice) string {
	upi := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&cu=INR",
		profile.UPIID, url.QueryEscape(profile.Name), inv.Total)
	return "https://api.qrserver.com/v1/create-qr-code/?size=100x100&data=" + url.QueryEscape(upi)
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Invoice #{{.Invoice.ID}}</title>
  <style>
    body { font-family: 'Helvetica', sans-serif; padding: 40px; color: #333; line-height: 1.6; max-width: 800px; margin: 0 auto; }
    .header { text-align: center; margin-bottom: 40px; border-bottom: 2px solid #333; padding-bottom: 20px; }
    .logo-text { font-size: 28px; font-weight: bold; color: #2c3e50; text-transform: uppercase; letter-spacing: 2px; }
    .sub-header { color: #7f8c8d; font-size: 14px; }
    .meta-container { display: flex; justify-content: space-between; margin-bottom: 40px; }
    .meta-box { width: 48%; }
    .meta-box h4 { margin: 0 0 10px 0; border-bottom: 1px solid #eee; padding-bottom: 5px; color: #7f8c8d; font-size: 12px; text-transform: uppercase; }
    .meta-content { font-size: 14px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
    th { background: #f8f9fa; text-align: left; padding: 12px; font-weight: bold; border-bottom: 2px solid #ddd; font-size: 14px; }
    td { padding: 12px; border-bottom: 1px solid #eee; font-size: 14px; }
    .total-section { float: right; width: 40%; }
    .total-row { display: flex; justify-content: space-between; padding: 5px 0; }
    .grand-total { font-weight: bold; font-size: 18px; border-top: 2px solid #333; margin-top: 10px; padding-top: 10px; }
    .clear { clear: both; }
    .footer { margin-top: 60px; text-align: center; font-size: 12px; color: #95a5a6; border-top: 1px solid #eee; padding-top: 20px; }
    .qr-section { margin-top: 30px; text-align: center; }
    .qr-img { width: 100px; height: 100px; border: 1px solid #eee; padding: 5px; }
    .terms { font-size: 11px; color: #7f8c8d; margin-top: 20px; text-align: left; background: #f9f9f9; padding: 10px; border-radius: 4px; }
  </style>
</head>
<body>
  <div class="header">
    <div class="logo-text">{{.Profile.Name}}</div>
    <div class="sub-header">{{.Profile.Address}} | {{.Profile.Phone}}</div>
    {{if .Profile.Email}}<div class="sub-header">{{.Profile.Email}}</div>{{end}}
    {{if .Profile.GSTIN}}<div class="sub-header"><strong>GSTIN:</strong> {{.Profile.GSTIN}}</div>{{end}}
  </div>

  <div class="meta-container">
    <div class="meta-box">
      <h4>Bill To</h4>
      <div class="meta-content">
        <strong>{{.CustomerName}}</strong><br/>
        {{.CustomerPhone}}<br/>
        {{.CustomerEmail}}
      </div>
    </div>
    <div class="meta-box" style="text-align: right;">
      <h4>Invoice Details</h4>
      <div class="meta-content">
        <strong>Invoice #:</strong> {{.Invoice.ID}}<br/>
        <strong>Date:</strong> {{.Invoice.Date}}<br/>
        <strong>Status:</strong> Paid ({{.Invoice.Method}})
      </div>
    </div>
  </div>

  <table>
    <thead>
      <tr>
        <th>Service Description</th>
        <th width="10%">Qty</th>
        <th width="20%">Price</th>
        <th width="20%">Total</th>
      </tr>
    </thead>
    <tbody>
      <tr>
        <td>
          <strong>{{.ServiceName}}</strong><br/>
          <span style="font-size: 12px; color: #777;">{{.ServiceDescription}}</span>
        </td>
        <td>1</td>
        <td>₹{{.Invoice.Amount}}</td>
        <td>₹{{.Invoice.Amount}}</td>
      </tr>
    </tbody>
  </table>

  <div class="total-section">
    <div class="total-row">
      <span>Subtotal:</span>
      <span>₹{{.Invoice.Amount}}</span>
    </div>
    <div class="total-row">
      <span>GST (18%):</span>
      <span>₹{{.Invoice.Tax}}</span>
    </div>
    <div class="total-row grand-total">
      <span>Grand Total:</span>
      <span>₹{{.Invoice.Total}}</span>
    </div>
  </div>
  <div class="clear"></div>

  <div class="qr-section">
    <p><strong>Scan to Pay</strong></p>
    <img class="qr-img" src="{{.QRCodeURL}}" alt="UPI QR"/>
    <p class="sub-header">{{.Profile.UPIID}}</p>
  </div>

  {{if .Profile.InvoiceTerms}}
  <div class="terms"><strong>Terms:</strong> {{.Profile.InvoiceTerms}}</div>
  {{end}}

  <div class="footer">Thank you for your business!</div>
</body>
</html>
`))

type invoicePage struct {
	Profile            models.BusinessProfile
	Invoice            models.Invoice
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	ServiceName        string
	ServiceDescription string
	QRCodeURL          string
}

// RenderInvoiceHTML produces the printable invoice document. Dangling
// customer or service references render as "Unknown" rather than failing.
func RenderInvoiceHTML(profile models.BusinessProfile, inv models.Invoice, customer *models.Customer, service *models.Service) (string, error) {
	page := invoicePage{
		Profile:      profile,
		Invoice:      inv,
		CustomerName: "Unknown",
		ServiceName:  "Unknown Service",
		QRCodeURL:    PaymentQRCodeURL(profile, inv),
	}
	if customer != nil {
		page.CustomerName = customer.Name
		page.CustomerPhone = customer.Phone
		page.CustomerEmail = customer.Email
	}
	if service != nil {
		page.ServiceName = service.Name
		page.ServiceDescription = service.Description
	}

	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, page); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return b.String(), nil
}
