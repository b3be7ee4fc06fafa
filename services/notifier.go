// services/notifier.go
package services

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"askbm-backend/models"
)

// Notifier sends customer-facing WhatsApp/SMS messages through Twilio,
// gated by the business profile's notification toggles. Send failures are
// logged and swallowed; notifications never block a workflow. The email
// toggles are honored but there is no email channel yet, so they result in a
// skip.
type Notifier struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
	log          *zap.Logger
	enabled      bool
}

func NewNotifier(accountSID, authToken, smsFrom, whatsappFrom string, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	n := &Notifier{
		smsFrom:      smsFrom,
		whatsappFrom: whatsappFrom,
		log:          log,
		enabled:      accountSID != "" && authToken != "",
	}
	if n.enabled {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
	}
	return n
}

// AppointmentConfirmation notifies a customer about a new booking.
func (n *Notifier) AppointmentConfirmation(profile models.BusinessProfile, customer models.Customer, appt models.Appointment, service models.Service) {
	if !profile.NotificationSettings.WhatsappAppt {
		return
	}
	msg := fmt.Sprintf("Hi %s, your %s appointment at %s is confirmed for %s at %s. See you then!",
		customer.Name, service.Name, profile.Name, appt.Date, appt.Time)
	n.send(customer.Phone, msg)
}

// PaymentReceipt notifies a customer that an invoice was generated.
func (n *Notifier) PaymentReceipt(profile models.BusinessProfile, customer models.Customer, inv models.Invoice) {
	if !profile.NotificationSettings.WhatsappPayment {
		return
	}
	msg := fmt.Sprintf("Hi %s, thank you for visiting %s! Your bill %s for ₹%d (incl. GST ₹%d) is settled via %s.",
		customer.Name, profile.Name, inv.ID, inv.Total, inv.Tax, inv.Method)
	n.send(customer.Phone, msg)
}

func (n *Notifier) send(phone, body string) {
	if !n.enabled {
		n.log.Debug("notifier not configured, skipping message", zap.String("to", phone))
		return
	}

	// WhatsApp for E.164 numbers, plain SMS otherwise.
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if strings.HasPrefix(phone, "+") {
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + n.whatsappFrom)
	} else {
		params.SetTo(phone)
		params.SetFrom(n.smsFrom)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		n.log.Warn("failed to send notification", zap.String("to", phone), zap.Error(err))
		return
	}
	if resp.Sid != nil {
		n.log.Info("notification sent", zap.String("to", phone), zap.String("sid", *resp.Sid))
	}
}
