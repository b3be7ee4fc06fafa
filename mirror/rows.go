// Package mirror replicates local cache mutations to the remote relational
// store, best effort, and pulls the remote state back down on login. The
// remote is never on the read path of a workflow; failures are logged and
// swallowed.
package mirror

import (
	"encoding/json"
	"fmt"
	"time"

	"askbm-backend/models"
)

// Row types mapped to the remote schema. Column names are the remote naming
// convention (snake_case); the mappers below are the single place where
// local field names are translated. Every row carries business_id for tenant
// scoping and updated_at for observability of last-write-wins races.

type profileRow struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Name             string    `gorm:"column:name"`
	Type             string    `gorm:"column:type"`
	Address          string    `gorm:"column:address"`
	Phone            string    `gorm:"column:phone"`
	Email            string    `gorm:"column:email;index"`
	UPIID            string    `gorm:"column:upi_id"`
	GSTIN            string    `gorm:"column:gst_in"`
	Logo             string    `gorm:"column:logo"`
	IsSubscribed     bool      `gorm:"column:is_subscribed"`
	SubscriptionPlan string    `gorm:"column:subscription_plan"`
	Approved         bool      `gorm:"column:approved"`
	InvoiceTerms     string    `gorm:"column:invoice_terms"`
	NotifyEmailAppt  bool      `gorm:"column:notify_email_appt"`
	NotifyWAAppt     bool      `gorm:"column:notify_whatsapp_appt"`
	NotifyEmailPay   bool      `gorm:"column:notify_email_payment"`
	NotifyWAPay      bool      `gorm:"column:notify_whatsapp_payment"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (profileRow) TableName() string { return "business_profiles" }

func profileToRow(p models.BusinessProfile) profileRow {
	return profileRow{
		ID:               p.ID,
		Name:             p.Name,
		Type:             string(p.Type),
		Address:          p.Address,
		Phone:            p.Phone,
		Email:            p.Email,
		UPIID:            p.UPIID,
		GSTIN:            p.GSTIN,
		Logo:             p.Logo,
		IsSubscribed:     p.IsSubscribed,
		SubscriptionPlan: string(p.SubscriptionPlan),
		Approved:         p.Approved,
		InvoiceTerms:     p.InvoiceTerms,
		NotifyEmailAppt:  p.NotificationSettings.EmailAppt,
		NotifyWAAppt:     p.NotificationSettings.WhatsappAppt,
		NotifyEmailPay:   p.NotificationSettings.EmailPayment,
		NotifyWAPay:      p.NotificationSettings.WhatsappPayment,
		UpdatedAt:        time.Now().UTC(),
	}
}

func profileFromRow(r profileRow) (models.BusinessProfile, error) {
	typ := models.BusinessType(r.Type)
	if !typ.Valid() {
		return models.BusinessProfile{}, fmt.Errorf("business_profiles row %s: unknown type %q", r.ID, r.Type)
	}
	plan := models.SubscriptionPlan(r.SubscriptionPlan)
	if !plan.Valid() {
		return models.BusinessProfile{}, fmt.Errorf("business_profiles row %s: unknown plan %q", r.ID, r.SubscriptionPlan)
	}
	return models.BusinessProfile{
		ID:               r.ID,
		Name:             r.Name,
		Type:             typ,
		Address:          r.Address,
		Phone:            r.Phone,
		Email:            r.Email,
		UPIID:            r.UPIID,
		GSTIN:            r.GSTIN,
		Logo:             r.Logo,
		IsSubscribed:     r.IsSubscribed,
		SubscriptionPlan: plan,
		Approved:         r.Approved,
		InvoiceTerms:     r.InvoiceTerms,
		NotificationSettings: models.NotificationSettings{
			EmailAppt:       r.NotifyEmailAppt,
			WhatsappAppt:    r.NotifyWAAppt,
			EmailPayment:    r.NotifyEmailPay,
			WhatsappPayment: r.NotifyWAPay,
		},
	}, nil
}

type serviceRow struct {
	ID              string    `gorm:"column:id;primaryKey"`
	BusinessID      string    `gorm:"column:business_id;index"`
	Name            string    `gorm:"column:name"`
	PriceUnits      int64     `gorm:"column:price_units"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	Description     string    `gorm:"column:description"`
	ImageURL        string    `gorm:"column:image_url"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (serviceRow) TableName() string { return "services" }

func serviceToRow(businessID string, s models.Service) serviceRow {
	return serviceRow{
		ID:              s.ID,
		BusinessID:      businessID,
		Name:            s.Name,
		PriceUnits:      s.Price,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		ImageURL:        s.Image,
		UpdatedAt:       time.Now().UTC(),
	}
}

func serviceFromRow(r serviceRow) (models.Service, error) {
	return models.Service{
		ID:              r.ID,
		Name:            r.Name,
		Price:           r.PriceUnits,
		DurationMinutes: r.DurationMinutes,
		Description:     r.Description,
		Image:           r.ImageURL,
	}, nil
}

// staffRow intentionally has no attendance column: presence is a
// local-session concept and must not survive a round trip through the
// remote store.
type staffRow struct {
	ID             string    `gorm:"column:id;primaryKey"`
	BusinessID     string    `gorm:"column:business_id;index"`
	Name           string    `gorm:"column:name"`
	Role           string    `gorm:"column:role"`
	Phone          string    `gorm:"column:phone"`
	CommissionRate float64   `gorm:"column:commission_rate"`
	AvatarURL      string    `gorm:"column:avatar_url"`
	Status         string    `gorm:"column:status"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (staffRow) TableName() string { return "staff" }

func staffToRow(businessID string, s models.Staff) staffRow {
	return staffRow{
		ID:             s.ID,
		BusinessID:     businessID,
		Name:           s.Name,
		Role:           string(s.Role),
		Phone:          s.Phone,
		CommissionRate: s.CommissionRate,
		AvatarURL:      s.Avatar,
		Status:         s.Status,
		UpdatedAt:      time.Now().UTC(),
	}
}

func staffFromRow(r staffRow) (models.Staff, error) {
	role := models.StaffRole(r.Role)
	if !role.Valid() {
		return models.Staff{}, fmt.Errorf("staff row %s: unknown role %q", r.ID, r.Role)
	}
	return models.Staff{
		ID:              r.ID,
		Name:            r.Name,
		Role:            role,
		Phone:           r.Phone,
		CommissionRate:  r.CommissionRate,
		Avatar:          r.AvatarURL,
		Status:          r.Status,
		AttendanceToday: false,
	}, nil
}

type customerRow struct {
	ID            string    `gorm:"column:id;primaryKey"`
	BusinessID    string    `gorm:"column:business_id;index"`
	Name          string    `gorm:"column:name"`
	Phone         string    `gorm:"column:phone;index"`
	Email         string    `gorm:"column:email"`
	Notes         string    `gorm:"column:notes"`
	TotalVisits   int       `gorm:"column:total_visits"`
	LoyaltyPoints int       `gorm:"column:loyalty_points"`
	LastVisit     string    `gorm:"column:last_visit"`
	PhotoURL      string    `gorm:"column:photo_url"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (customerRow) TableName() string { return "customers" }

func customerToRow(businessID string, c models.Customer) customerRow {
	return customerRow{
		ID:            c.ID,
		BusinessID:    businessID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Notes:         c.Notes,
		TotalVisits:   c.TotalVisits,
		LoyaltyPoints: c.LoyaltyPoints,
		LastVisit:     c.LastVisit,
		PhotoURL:      c.Photo,
		UpdatedAt:     time.Now().UTC(),
	}
}

func customerFromRow(r customerRow) (models.Customer, error) {
	return models.Customer{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		Notes:         r.Notes,
		TotalVisits:   r.TotalVisits,
		LoyaltyPoints: r.LoyaltyPoints,
		LastVisit:     r.LastVisit,
		Photo:         r.PhotoURL,
	}, nil
}

type inventoryRow struct {
	ID            string    `gorm:"column:id;primaryKey"`
	BusinessID    string    `gorm:"column:business_id;index"`
	Name          string    `gorm:"column:name"`
	Category      string    `gorm:"column:category"`
	StockCount    int       `gorm:"column:stock_count"`
	Unit          string    `gorm:"column:unit"`
	MinStockAlert int       `gorm:"column:min_stock_alert"`
	Vendor        string    `gorm:"column:vendor"`
	LastRestocked string    `gorm:"column:last_restocked"`
	ImageURL      string    `gorm:"column:image_url"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (inventoryRow) TableName() string { return "inventory_items" }

func inventoryToRow(businessID string, i models.InventoryItem) inventoryRow {
	return inventoryRow{
		ID:            i.ID,
		BusinessID:    businessID,
		Name:          i.Name,
		Category:      i.Category,
		StockCount:    i.Stock,
		Unit:          i.Unit,
		MinStockAlert: i.MinStockAlert,
		Vendor:        i.Vendor,
		LastRestocked: i.LastRestocked,
		ImageURL:      i.Image,
		UpdatedAt:     time.Now().UTC(),
	}
}

func inventoryFromRow(r inventoryRow) (models.InventoryItem, error) {
	stock := r.StockCount
	if stock < 0 {
		stock = 0
	}
	return models.InventoryItem{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		Stock:         stock,
		Unit:          r.Unit,
		MinStockAlert: r.MinStockAlert,
		Vendor:        r.Vendor,
		LastRestocked: r.LastRestocked,
		Image:         r.ImageURL,
	}, nil
}

type appointmentRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	BusinessID string    `gorm:"column:business_id;index"`
	CustomerID string    `gorm:"column:customer_id"`
	StaffID    string    `gorm:"column:staff_id"`
	ServiceID  string    `gorm:"column:service_id"`
	Date       string    `gorm:"column:date"`
	StartTime  string    `gorm:"column:start_time"`
	Status     string    `gorm:"column:status"`
	Notes      string    `gorm:"column:notes"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (appointmentRow) TableName() string { return "appointments" }

func appointmentToRow(businessID string, a models.Appointment) appointmentRow {
	return appointmentRow{
		ID:         a.ID,
		BusinessID: businessID,
		CustomerID: a.CustomerID,
		StaffID:    a.StaffID,
		ServiceID:  a.ServiceID,
		Date:       a.Date,
		StartTime:  a.Time,
		Status:     string(a.Status),
		Notes:      a.Notes,
		UpdatedAt:  time.Now().UTC(),
	}
}

func appointmentFromRow(r appointmentRow) (models.Appointment, error) {
	status := models.AppointmentStatus(r.Status)
	if !status.Valid() {
		return models.Appointment{}, fmt.Errorf("appointments row %s: unknown status %q", r.ID, r.Status)
	}
	return models.Appointment{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		StaffID:    r.StaffID,
		ServiceID:  r.ServiceID,
		Date:       r.Date,
		Time:       r.StartTime,
		Status:     status,
		Notes:      r.Notes,
	}, nil
}

type invoiceRow struct {
	ID            string    `gorm:"column:id;primaryKey"`
	BusinessID    string    `gorm:"column:business_id;index"`
	AppointmentID string    `gorm:"column:appointment_id"`
	CustomerID    string    `gorm:"column:customer_id"`
	Date          string    `gorm:"column:date"`
	SubtotalUnits int64     `gorm:"column:subtotal_units"`
	TaxUnits      int64     `gorm:"column:tax_units"`
	TotalUnits    int64     `gorm:"column:total_units"`
	PaymentMethod string    `gorm:"column:payment_method"`
	GeneratedAt   time.Time `gorm:"column:generated_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (invoiceRow) TableName() string { return "invoices" }

func invoiceToRow(businessID string, i models.Invoice) invoiceRow {
	return invoiceRow{
		ID:            i.ID,
		BusinessID:    businessID,
		AppointmentID: i.AppointmentID,
		CustomerID:    i.CustomerID,
		Date:          i.Date,
		SubtotalUnits: i.Amount,
		TaxUnits:      i.Tax,
		TotalUnits:    i.Total,
		PaymentMethod: string(i.Method),
		GeneratedAt:   i.GeneratedAt,
		UpdatedAt:     time.Now().UTC(),
	}
}

func invoiceFromRow(r invoiceRow) (models.Invoice, error) {
	method := models.PaymentMethod(r.PaymentMethod)
	if !method.Valid() {
		return models.Invoice{}, fmt.Errorf("invoices row %s: unknown payment method %q", r.ID, r.PaymentMethod)
	}
	return models.Invoice{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		CustomerID:    r.CustomerID,
		Date:          r.Date,
		Amount:        r.SubtotalUnits,
		Tax:           r.TaxUnits,
		Total:         r.TotalUnits,
		Method:        method,
		GeneratedAt:   r.GeneratedAt,
	}, nil
}

type consultationRow struct {
	ID              string    `gorm:"column:id;primaryKey"`
	BusinessID      string    `gorm:"column:business_id;index"`
	CustomerName    string    `gorm:"column:customer_name"`
	FaceShape       string    `gorm:"column:face_shape"`
	SkinTone        string    `gorm:"column:skin_tone"`
	AgeGroup        string    `gorm:"column:age_group"`
	Recommendations string    `gorm:"column:recommended_services;type:jsonb"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (consultationRow) TableName() string { return "ai_consultations" }

func consultationToRow(businessID string, c models.Consultation) consultationRow {
	recs, err := json.Marshal(c.Result.Recommendations)
	if err != nil {
		recs = []byte("[]")
	}
	return consultationRow{
		ID:              c.ID,
		BusinessID:      businessID,
		CustomerName:    c.CustomerName,
		FaceShape:       c.Result.FaceShape,
		SkinTone:        c.Result.SkinTone,
		AgeGroup:        c.Result.AgeGroup,
		Recommendations: string(recs),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       time.Now().UTC(),
	}
}

func consultationFromRow(r consultationRow) (models.Consultation, error) {
	var recs []models.Recommendation
	if r.Recommendations != "" {
		if err := json.Unmarshal([]byte(r.Recommendations), &recs); err != nil {
			return models.Consultation{}, fmt.Errorf("ai_consultations row %s: bad recommendations payload: %w", r.ID, err)
		}
	}
	return models.Consultation{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Result: models.FaceAnalysis{
			FaceShape:       r.FaceShape,
			SkinTone:        r.SkinTone,
			AgeGroup:        r.AgeGroup,
			Recommendations: recs,
		},
		CreatedAt: r.CreatedAt,
	}, nil
}
