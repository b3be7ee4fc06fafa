package models

// StaffRole is the closed set of roles a staff member can hold.
type StaffRole string

const (
	RoleOwner   StaffRole = "OWNER"
	RoleManager StaffRole = "MANAGER"
	RoleStaff   StaffRole = "STAFF"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

// BusinessType identifies the vertical a business operates in. Only SALON is
// fully supported today; the rest are reserved.
type BusinessType string

const (
	BusinessSalon   BusinessType = "SALON"
	BusinessMedical BusinessType = "MEDICAL"
	BusinessSchool  BusinessType = "SCHOOL"
	BusinessGym     BusinessType = "GYM"
)

func (t BusinessType) Valid() bool {
	switch t {
	case BusinessSalon, BusinessMedical, BusinessSchool, BusinessGym:
		return true
	}
	return false
}

// PaymentMethod is the closed set of ways an invoice can be settled.
// PENDING marks an unsettled invoice.
type PaymentMethod string

const (
	PayCash    PaymentMethod = "CASH"
	PayUPI     PaymentMethod = "UPI"
	PayCard    PaymentMethod = "CARD"
	PayPending PaymentMethod = "PENDING"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayUPI, PayCard, PayPending:
		return true
	}
	return false
}

// AppointmentStatus is mutated in place over an appointment's lifecycle;
// appointments are never structurally deleted.
type AppointmentStatus string

const (
	ApptScheduled AppointmentStatus = "SCHEDULED"
	ApptCompleted AppointmentStatus = "COMPLETED"
	ApptCancelled AppointmentStatus = "CANCELLED"
	ApptNoShow    AppointmentStatus = "NOSHOW"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case ApptScheduled, ApptCompleted, ApptCancelled, ApptNoShow:
		return true
	}
	return false
}

// SubscriptionPlan is the billing plan of a business account.
type SubscriptionPlan string

const (
	PlanTrial   SubscriptionPlan = "trial"
	PlanMonthly SubscriptionPlan = "monthly"
	Plan3Month  SubscriptionPlan = "3month"
	Plan6Month  SubscriptionPlan = "6month"
	PlanYearly  SubscriptionPlan = "yearly"
)

func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanTrial, PlanMonthly, Plan3Month, Plan6Month, PlanYearly:
		return true
	}
	return false
}

// Staff activity status values. Kept as plain strings in the record.
const (
	StaffActive   = "active"
	StaffInactive = "inactive"
)
