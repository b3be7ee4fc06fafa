package services_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/models"
	"askbm-backend/services"
)

func TestCalculateTax(t *testing.T) {
	cases := []struct {
		amount int64
		want   int64
	}{
		{0, 0},
		{100, 18},
		{500, 90},
		{1, 0},   // 0.18 rounds down
		{3, 1},   // 0.54 rounds up
		{999, 180},
		{1500, 270},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.CalculateTax(tc.amount), "amount %d", tc.amount)
	}
}

func TestCalculateTaxMatchesRounding(t *testing.T) {
	for amount := int64(0); amount < 2000; amount++ {
		want := int64(math.Round(float64(amount) * 0.18))
		require.Equal(t, want, services.CalculateTax(amount), "amount %d", amount)
	}
}

func TestNewInvoice(t *testing.T) {
	inv := services.NewInvoice("appt1", "cust1", 500, models.PayUPI)

	assert.Equal(t, "appt1", inv.AppointmentID)
	assert.Equal(t, "cust1", inv.CustomerID)
	assert.Equal(t, int64(500), inv.Amount)
	assert.Equal(t, int64(90), inv.Tax)
	assert.Equal(t, int64(590), inv.Total)
	assert.Equal(t, models.PayUPI, inv.Method)
	assert.True(t, strings.HasPrefix(inv.ID, "INV-"))
	assert.False(t, inv.GeneratedAt.IsZero())
	assert.NotEmpty(t, inv.Date)

	other := services.NewInvoice("appt1", "cust1", 500, models.PayUPI)
	assert.NotEqual(t, inv.ID, other.ID)
}

func TestPaymentQRCodeURL(t *testing.T) {
	profile := models.BusinessProfile{Name: "Luxe Salon", UPIID: "luxe@upi"}
	inv := models.Invoice{Total: 590}

	url := services.PaymentQRCodeURL(profile, inv)
	assert.Contains(t, url, "api.qrserver.com")
	assert.Contains(t, url, "luxe%40upi")
	assert.Contains(t, url, "590")
}

func TestRenderInvoiceHTML(t *testing.T) {
	profile := models.BusinessProfile{
		Name:         "Luxe Salon",
		Address:      "12 MG Road",
		Phone:        "+919876543210",
		GSTIN:        "29ABCDE1234F1Z5",
		UPIID:        "luxe@upi",
		InvoiceTerms: "Services are non-refundable.",
	}
	inv := services.NewInvoice("appt1", "cust1", 500, models.PayCash)
	customer := models.Customer{Name: "Alice", Phone: "+911234567890", Email: "a@example.com"}
	service := models.Service{Name: "Haircut", Description: "Classic cut"}

	html, err := services.RenderInvoiceHTML(profile, inv, &customer, &service)
	require.NoError(t, err)

	assert.Contains(t, html, "Luxe Salon")
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "Haircut")
	assert.Contains(t, html, inv.ID)
	assert.Contains(t, html, "₹500")
	assert.Contains(t, html, "₹90")
	assert.Contains(t, html, "₹590")
	assert.Contains(t, html, "29ABCDE1234F1Z5")
	assert.Contains(t, html, "Services are non-refundable.")
	assert.Contains(t, html, "api.qrserver.com")
}

func TestRenderInvoiceHTMLToleratesDanglingRefs(t *testing.T) {
	profile := models.BusinessProfile{Name: "Luxe Salon", UPIID: "luxe@upi"}
	inv := services.NewInvoice("gone", "gone", 100, models.PayCard)

	html, err := services.RenderInvoiceHTML(profile, inv, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Unknown")
	assert.Contains(t, html, "Unknown Service")
}
