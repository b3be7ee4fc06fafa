package models

// NotificationSettings holds the four independent channel toggles a business
// can flip in settings.
type NotificationSettings struct {
	EmailAppt       bool `json:"emailAppt"`
	WhatsappAppt    bool `json:"whatsappAppt"`
	EmailPayment    bool `json:"emailPayment"`
	WhatsappPayment bool `json:"whatsappPayment"`
}

// BusinessProfile is the one-per-tenant identity record. It is created at
// registration, mutated through settings, and never deleted.
type BusinessProfile struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Type                 BusinessType         `json:"type"`
	Address              string               `json:"address"`
	Phone                string               `json:"phone"`
	Email                string               `json:"email"`
	UPIID                string               `json:"upiId"`
	GSTIN                string               `json:"gstIn"`
	Logo                 string               `json:"logo,omitempty"`
	IsSubscribed         bool                 `json:"isSubscribed"`
	SubscriptionPlan     SubscriptionPlan     `json:"subscriptionPlan"`
	Approved             bool                 `json:"approved"`
	InvoiceTerms         string               `json:"invoiceTerms"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
}
