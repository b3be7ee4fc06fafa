package mirror

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/models"
)

func TestProfileRowRoundTrip(t *testing.T) {
	p := models.BusinessProfile{
		ID:               "biz1",
		Name:             "Luxe Salon",
		Type:             models.BusinessSalon,
		Address:          "12 MG Road",
		Phone:            "+919876543210",
		Email:            "owner@luxe.example",
		UPIID:            "luxe@upi",
		GSTIN:            "29ABCDE1234F1Z5",
		IsSubscribed:     true,
		SubscriptionPlan: models.PlanMonthly,
		Approved:         true,
		InvoiceTerms:     "Services are non-refundable.",
		NotificationSettings: models.NotificationSettings{
			EmailAppt:       true,
			WhatsappPayment: true,
		},
	}

	row := profileToRow(p)
	assert.Equal(t, "business_profiles", row.TableName())
	assert.False(t, row.UpdatedAt.IsZero())

	got, err := profileFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestProfileRowRejectsUnknownEnums(t *testing.T) {
	row := profileToRow(models.BusinessProfile{ID: "biz1", Type: models.BusinessSalon, SubscriptionPlan: models.PlanTrial})

	t.Run("bad type", func(t *testing.T) {
		bad := row
		bad.Type = "BAKERY"
		_, err := profileFromRow(bad)
		assert.Error(t, err)
	})

	t.Run("bad plan", func(t *testing.T) {
		bad := row
		bad.SubscriptionPlan = "lifetime"
		_, err := profileFromRow(bad)
		assert.Error(t, err)
	})
}

func TestServiceRowRoundTrip(t *testing.T) {
	s := models.Service{ID: "s1", Name: "Haircut", Price: 500, DurationMinutes: 30, Description: "Classic cut", Image: "http://img"}

	row := serviceToRow("biz1", s)
	assert.Equal(t, "biz1", row.BusinessID)
	assert.Equal(t, int64(500), row.PriceUnits)

	got, err := serviceFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestStaffRowDropsAttendance(t *testing.T) {
	s := models.Staff{
		ID: "st1", Name: "Asha", Role: models.RoleManager, Phone: "+911112223334",
		CommissionRate: 12.5, Status: models.StaffActive, AttendanceToday: true,
	}

	row := staffToRow("biz1", s)
	got, err := staffFromRow(row)
	require.NoError(t, err)

	assert.False(t, got.AttendanceToday)
	s.AttendanceToday = false
	assert.Equal(t, s, got)
}

func TestStaffRowRejectsUnknownRole(t *testing.T) {
	row := staffToRow("biz1", models.Staff{ID: "st1", Role: models.RoleStaff})
	row.Role = "INTERN"
	_, err := staffFromRow(row)
	assert.Error(t, err)
}

func TestCustomerRowRoundTrip(t *testing.T) {
	c := models.Customer{
		ID: "c1", Name: "Alice", Phone: "+911234567890", Email: "a@example.com",
		Notes: "Prefers evenings", TotalVisits: 4, LoyaltyPoints: 40, LastVisit: "2026-08-20",
	}
	got, err := customerFromRow(customerToRow("biz1", c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestInventoryRowClampsNegativeStock(t *testing.T) {
	row := inventoryToRow("biz1", models.InventoryItem{ID: "i1", Name: "Shampoo", Stock: 5})
	row.StockCount = -3

	got, err := inventoryFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestAppointmentRowRoundTrip(t *testing.T) {
	a := models.Appointment{
		ID: "a1", CustomerID: "c1", StaffID: "st1", ServiceID: "s1",
		Date: "2026-09-01", Time: "10:30", Status: models.ApptScheduled, Notes: "First visit",
	}
	got, err := appointmentFromRow(appointmentToRow("biz1", a))
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAppointmentRowRejectsUnknownStatus(t *testing.T) {
	row := appointmentToRow("biz1", models.Appointment{ID: "a1", Status: models.ApptScheduled})
	row.Status = "WAITLISTED"
	_, err := appointmentFromRow(row)
	assert.Error(t, err)
}

func TestInvoiceRowRoundTrip(t *testing.T) {
	inv := models.Invoice{
		ID: "INV-20260830-ABCDEF", AppointmentID: "a1", CustomerID: "c1",
		Date: "2026-08-30", Amount: 500, Tax: 90, Total: 590,
		Method: models.PayUPI, GeneratedAt: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	}
	got, err := invoiceFromRow(invoiceToRow("biz1", inv))
	require.NoError(t, err)
	assert.Equal(t, inv, got)
}

func TestInvoiceRowRejectsUnknownMethod(t *testing.T) {
	row := invoiceToRow("biz1", models.Invoice{ID: "INV-1", Method: models.PayCash})
	row.PaymentMethod = "CHEQUE"
	_, err := invoiceFromRow(row)
	assert.Error(t, err)
}

func TestConsultationRowRoundTrip(t *testing.T) {
	con := models.Consultation{
		ID:           "con1",
		CustomerName: "Alice",
		Result: models.FaceAnalysis{
			FaceShape: "Oval",
			SkinTone:  "Medium",
			AgeGroup:  "25-35",
			Recommendations: []models.Recommendation{
				{Service: "Hydrating Facial", Reason: "Dry skin"},
			},
		},
		CreatedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}

	got, err := consultationFromRow(consultationToRow("biz1", con))
	require.NoError(t, err)
	assert.Equal(t, con, got)
}

func TestConsultationRowRejectsBadPayload(t *testing.T) {
	row := consultationToRow("biz1", models.Consultation{ID: "con1"})
	row.Recommendations = "{not json"
	_, err := consultationFromRow(row)
	assert.Error(t, err)
}
