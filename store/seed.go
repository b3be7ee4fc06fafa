package store

import (
	"time"

	"askbm-backend/models"
)

// seedDemoTenant writes non-empty sample data into every collection of the
// given tenant so a fresh demo session has something to show. Writes go
// straight to the local store; demo data is never mirrored.
func seedDemoTenant(s *Store, tenantID string) error {
	profile := models.BusinessProfile{
		ID:               tenantID,
		Name:             "Guest Salon Demo",
		Type:             models.BusinessSalon,
		Address:          "123 Fashion Ave, Metro City",
		Phone:            "555-SALON-01",
		Email:            GuestEmail,
		UPIID:            "luxesalon@upi",
		IsSubscribed:     true,
		SubscriptionPlan: models.PlanTrial,
		Approved:         true,
		InvoiceTerms:     "No returns on products. Services are non-refundable.",
		NotificationSettings: models.NotificationSettings{
			EmailAppt:    true,
			WhatsappAppt: true,
			EmailPayment: true,
		},
	}
	if err := setJSON(s, tenantKey(tenantID, ColProfile), profile); err != nil {
		return err
	}

	services := []models.Service{
		{ID: "1", Name: "Haircut (Men)", Price: 15, DurationMinutes: 30, Description: "Standard haircut with styling"},
		{ID: "2", Name: "Haircut (Women)", Price: 40, DurationMinutes: 60, Description: "Cut, wash, and blow-dry"},
		{ID: "3", Name: "Facial (Gold)", Price: 50, DurationMinutes: 45, Description: "Premium gold facial for glowing skin"},
		{ID: "4", Name: "Manicure", Price: 25, DurationMinutes: 30, Description: "Classic manicure"},
		{ID: "5", Name: "Hair Color (Global)", Price: 80, DurationMinutes: 120, Description: "Full head hair coloring"},
	}
	if err := putList(s, tenantKey(tenantID, ColServices), services); err != nil {
		return err
	}

	staff := []models.Staff{
		{ID: "1", Name: "Sarah Jones", Role: models.RoleOwner, Phone: "555-0101", Status: models.StaffActive, AttendanceToday: true},
		{ID: "2", Name: "Mike Ross", Role: models.RoleStaff, Phone: "555-0102", CommissionRate: 10, Status: models.StaffActive, AttendanceToday: true},
		{ID: "3", Name: "Jessica Lee", Role: models.RoleManager, Phone: "555-0103", CommissionRate: 5, Status: models.StaffActive},
	}
	if err := putList(s, tenantKey(tenantID, ColStaff), staff); err != nil {
		return err
	}

	customers := []models.Customer{
		{ID: "1", Name: "Alice Smith", Phone: "555-1000", Email: "alice@example.com", TotalVisits: 5, LoyaltyPoints: 50, LastVisit: "2023-10-15"},
		{ID: "2", Name: "Bob Brown", Phone: "555-1002", Email: "bob@example.com", TotalVisits: 1, LoyaltyPoints: 10, LastVisit: "2023-10-20"},
	}
	if err := putList(s, tenantKey(tenantID, ColCustomers), customers); err != nil {
		return err
	}

	inventory := []models.InventoryItem{
		{ID: "1", Name: "Loreal Shampoo", Category: "Hair Care", Stock: 12, Unit: "Bottle", MinStockAlert: 5, Vendor: "Beauty Supply Co"},
		{ID: "2", Name: "Facial Kit", Category: "Skin Care", Stock: 3, Unit: "Kit", MinStockAlert: 5, Vendor: "Glow Vendors"},
		{ID: "3", Name: "Hair Color Tubes", Category: "Chemicals", Stock: 25, Unit: "Tube", MinStockAlert: 10, Vendor: "Beauty Supply Co"},
	}
	if err := putList(s, tenantKey(tenantID, ColInventory), inventory); err != nil {
		return err
	}

	today := time.Now().Format("2006-01-02")
	appointments := []models.Appointment{
		{ID: "demo-appt-1", CustomerID: "1", StaffID: "2", ServiceID: "1", Date: today, Time: "11:00", Status: models.ApptScheduled, Notes: "Demo booking"},
	}
	if err := putList(s, tenantKey(tenantID, ColAppointments), appointments); err != nil {
		return err
	}

	invoices := []models.Invoice{
		{
			ID:            "INV-DEMO-1",
			AppointmentID: "demo-appt-0",
			CustomerID:    "2",
			Date:          today,
			Amount:        40,
			Tax:           7,
			Total:         47,
			Method:        models.PayCash,
			GeneratedAt:   time.Now(),
		},
	}
	return putList(s, tenantKey(tenantID, ColInvoices), invoices)
}
