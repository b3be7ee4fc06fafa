package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type BookAppointmentInput struct {
	CustomerID string `json:"customerId" binding:"required"`
	StaffID    string `json:"staffId" binding:"required"`
	ServiceID  string `json:"serviceId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

type RescheduleInput struct {
	StaffID string  `json:"staffId"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Notes   *string `json:"notes"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (ct *Controller) GetAppointments(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Appointments(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	if date := c.Query("date"); date != "" {
		filtered := make([]models.Appointment, 0, len(list))
		for _, a := range list {
			if a.Date == date {
				filtered = append(filtered, a)
			}
		}
		list = filtered
	}
	c.JSON(http.StatusOK, list)
}

// BookAppointment creates a scheduled appointment after the staff slot
// check. A taken slot is a conflict, not an error in the request itself.
func (ct *Controller) BookAppointment(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if !utils.ValidateClockTime(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected HH:mm")
		return
	}

	duration := 0
	if svc, found, err := ct.findService(tenant, input.ServiceID); err == nil && found {
		duration = svc.DurationMinutes
	}

	free, err := ct.Cache.CheckAvailability(tenant, input.StaffID, input.Date, input.Time, duration, "")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if !free {
		utils.RespondWithError(c, http.StatusConflict, "Staff member is not available at this time")
		return
	}

	appt := models.Appointment{
		ID:         uuid.NewString(),
		CustomerID: input.CustomerID,
		StaffID:    input.StaffID,
		ServiceID:  input.ServiceID,
		Date:       input.Date,
		Time:       input.Time,
		Status:     models.ApptScheduled,
		Notes:      input.Notes,
	}
	if err := ct.Cache.SaveAppointment(tenant, appt); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}

	ct.notifyBooking(tenant, appt)

	c.JSON(http.StatusCreated, appt)
}

// RescheduleAppointment moves an appointment to a new slot, checking
// availability with the appointment itself excluded.
func (ct *Controller) RescheduleAppointment(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	appt, found, err := ct.findAppointment(tenant, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.StaffID != "" {
		appt.StaffID = input.StaffID
	}
	if input.Date != "" {
		if !utils.ValidateDate(input.Date) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		appt.Date = input.Date
	}
	if input.Time != "" {
		if !utils.ValidateClockTime(input.Time) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected HH:mm")
			return
		}
		appt.Time = input.Time
	}
	if input.Notes != nil {
		appt.Notes = *input.Notes
	}

	duration := 0
	if svc, found, err := ct.findService(tenant, appt.ServiceID); err == nil && found {
		duration = svc.DurationMinutes
	}
	free, err := ct.Cache.CheckAvailability(tenant, appt.StaffID, appt.Date, appt.Time, duration, appt.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if !free {
		utils.RespondWithError(c, http.StatusConflict, "Staff member is not available at this time")
		return
	}

	if err := ct.Cache.SaveAppointment(tenant, appt); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}

// UpdateAppointmentStatus moves the appointment through its lifecycle.
// Appointments are never deleted; cancellation is a status.
func (ct *Controller) UpdateAppointmentStatus(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	status := models.AppointmentStatus(input.Status)
	if !status.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment status")
		return
	}

	appt, found, err := ct.findAppointment(tenant, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	appt.Status = status
	if err := ct.Cache.SaveAppointment(tenant, appt); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ct *Controller) notifyBooking(tenant string, appt models.Appointment) {
	profile, found, err := ct.Cache.Profile(tenant)
	if err != nil || !found {
		return
	}
	customer, foundCust, err := ct.findCustomer(tenant, appt.CustomerID)
	if err != nil || !foundCust {
		return
	}
	service, foundSvc, err := ct.findService(tenant, appt.ServiceID)
	if err != nil || !foundSvc {
		return
	}
	go ct.Notifier.AppointmentConfirmation(profile, customer, appt, service)
}

func (ct *Controller) findAppointment(tenant, id string) (models.Appointment, bool, error) {
	list, err := ct.Cache.Appointments(tenant)
	if err != nil {
		return models.Appointment{}, false, err
	}
	for _, a := range list {
		if a.ID == id {
			return a, true, nil
		}
	}
	return models.Appointment{}, false, nil
}

func (ct *Controller) findService(tenant, id string) (models.Service, bool, error) {
	list, err := ct.Cache.Services(tenant)
	if err != nil {
		return models.Service{}, false, err
	}
	for _, s := range list {
		if s.ID == id {
			return s, true, nil
		}
	}
	return models.Service{}, false, nil
}
