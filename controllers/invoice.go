package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/services"
	"askbm-backend/utils"
)

type GenerateInvoiceInput struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Method        string `json:"method" binding:"required"`
}

type QuickBillInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	ServiceID     string `json:"serviceId" binding:"required"`
	Method        string `json:"method" binding:"required"`
}

func (ct *Controller) GetInvoices(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Invoices(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	c.JSON(http.StatusOK, list)
}

// UnbilledAppointments lists completed-or-scheduled appointments that have
// no invoice yet, which is what the billing screen works from.
func (ct *Controller) UnbilledAppointments(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	appts, err := ct.Cache.Appointments(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	invoices, err := ct.Cache.Invoices(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	billed := make(map[string]bool, len(invoices))
	for _, inv := range invoices {
		billed[inv.AppointmentID] = true
	}
	out := make([]models.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Status == models.ApptCancelled || billed[a.ID] {
			continue
		}
		out = append(out, a)
	}
	c.JSON(http.StatusOK, out)
}

// GenerateInvoice bills an appointment: one immutable invoice, the
// appointment moves to COMPLETED, and the customer's visit and loyalty
// counters advance.
func (ct *Controller) GenerateInvoice(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input GenerateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	method := models.PaymentMethod(input.Method)
	if !method.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}

	appt, found, err := ct.findAppointment(tenant, input.AppointmentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if billed, err := ct.Cache.HasInvoiceForAppointment(tenant, appt.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	} else if billed {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is already billed")
		return
	}

	var amount int64
	if svc, foundSvc, err := ct.findService(tenant, appt.ServiceID); err == nil && foundSvc {
		amount = svc.Price
	}

	inv := services.NewInvoice(appt.ID, appt.CustomerID, amount, method)
	if err := ct.Cache.AppendInvoice(tenant, inv); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save invoice")
		return
	}

	appt.Status = models.ApptCompleted
	if err := ct.Cache.SaveAppointment(tenant, appt); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	ct.recordVisit(tenant, appt.CustomerID)
	ct.notifyPayment(tenant, appt.CustomerID, inv)

	c.JSON(http.StatusCreated, inv)
}

// QuickBill handles a walk-in: the customer is found by phone or created on
// the spot, a completed appointment is recorded for today, and the invoice
// is generated in the same stroke.
func (ct *Controller) QuickBill(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input QuickBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	method := models.PaymentMethod(input.Method)
	if !method.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}
	svc, foundSvc, err := ct.findService(tenant, input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load services")
		return
	}
	if !foundSvc {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	customer, exists, err := ct.Cache.FindCustomerByPhone(tenant, input.CustomerPhone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	if !exists {
		customer = models.Customer{
			ID:    uuid.NewString(),
			Name:  input.CustomerName,
			Phone: input.CustomerPhone,
		}
		if err := ct.Cache.SaveCustomer(tenant, customer); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save customer")
			return
		}
	}

	appt := models.Appointment{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		ServiceID:  svc.ID,
		Date:       utils.Today(),
		Time:       utils.NowClock(),
		Status:     models.ApptCompleted,
		Notes:      "Walk-in",
	}
	if err := ct.Cache.SaveAppointment(tenant, appt); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}

	inv := services.NewInvoice(appt.ID, customer.ID, svc.Price, method)
	if err := ct.Cache.AppendInvoice(tenant, inv); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save invoice")
		return
	}

	ct.recordVisit(tenant, customer.ID)
	ct.notifyPayment(tenant, customer.ID, inv)

	c.JSON(http.StatusCreated, gin.H{
		"invoice":  inv,
		"customer": customer.ID,
	})
}

// PrintInvoice renders the invoice as a standalone HTML document with the
// UPI payment QR. Dangling references print as unknown.
func (ct *Controller) PrintInvoice(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	invoices, err := ct.Cache.Invoices(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	var inv *models.Invoice
	for i := range invoices {
		if invoices[i].ID == id {
			inv = &invoices[i]
			break
		}
	}
	if inv == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	profile, _, err := ct.Cache.Profile(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business profile")
		return
	}

	var customerPtr *models.Customer
	if cust, found, err := ct.findCustomer(tenant, inv.CustomerID); err == nil && found {
		customerPtr = &cust
	}
	var servicePtr *models.Service
	if appt, found, err := ct.findAppointment(tenant, inv.AppointmentID); err == nil && found {
		if svc, foundSvc, err := ct.findService(tenant, appt.ServiceID); err == nil && foundSvc {
			servicePtr = &svc
		}
	}

	html, err := services.RenderInvoiceHTML(profile, *inv, customerPtr, servicePtr)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render invoice")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// recordVisit advances the customer's visit counter, loyalty points and last
// visit date after a successful bill. A dangling customer reference is
// skipped.
func (ct *Controller) recordVisit(tenant, customerID string) {
	customer, found, err := ct.findCustomer(tenant, customerID)
	if err != nil || !found {
		return
	}
	customer.TotalVisits++
	customer.LoyaltyPoints += 10
	customer.LastVisit = utils.Today()
	if err := ct.Cache.SaveCustomer(tenant, customer); err != nil {
		ct.Log.Warn("failed to record customer visit")
	}
}

func (ct *Controller) notifyPayment(tenant, customerID string, inv models.Invoice) {
	profile, found, err := ct.Cache.Profile(tenant)
	if err != nil || !found {
		return
	}
	customer, foundCust, err := ct.findCustomer(tenant, customerID)
	if err != nil || !foundCust {
		return
	}
	go ct.Notifier.PaymentReceipt(profile, customer, inv)
}
