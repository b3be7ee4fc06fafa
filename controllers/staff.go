package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type StaffInput struct {
	Name           string  `json:"name" binding:"required"`
	Role           string  `json:"role" binding:"required"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commissionRate"`
	Avatar         string  `json:"avatar"`
	Status         string  `json:"status"`
}

func (ct *Controller) GetStaff(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Staff(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load staff")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ct *Controller) CreateStaff(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	role := models.StaffRole(input.Role)
	if !role.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff role")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	status := input.Status
	if status == "" {
		status = models.StaffActive
	}
	member := models.Staff{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Role:           role,
		Phone:          input.Phone,
		CommissionRate: input.CommissionRate,
		Avatar:         input.Avatar,
		Status:         status,
	}
	if err := ct.Cache.SaveStaff(tenant, member); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save staff member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (ct *Controller) UpdateStaff(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	existing, found, err := ct.findStaff(tenant, id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load staff")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	var input StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	role := models.StaffRole(input.Role)
	if !role.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff role")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	member := models.Staff{
		ID:              id,
		Name:            input.Name,
		Role:            role,
		Phone:           input.Phone,
		CommissionRate:  input.CommissionRate,
		Avatar:          input.Avatar,
		Status:          input.Status,
		AttendanceToday: existing.AttendanceToday,
	}
	if member.Status == "" {
		member.Status = existing.Status
	}
	if err := ct.Cache.SaveStaff(tenant, member); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save staff member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (ct *Controller) DeleteStaff(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	if err := ct.Cache.DeleteStaff(tenant, c.Param("id")); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}

type AttendanceInput struct {
	Present *bool `json:"present" binding:"required"`
}

// SetAttendance flips the present-today flag. The flag stays on this device
// only and resets at midnight.
func (ct *Controller) SetAttendance(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	id := c.Param("id")
	member, found, err := ct.findStaff(tenant, id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load staff")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}
	member.AttendanceToday = *input.Present
	if err := ct.Cache.SaveStaff(tenant, member); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save attendance")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (ct *Controller) findStaff(tenant, id string) (models.Staff, bool, error) {
	list, err := ct.Cache.Staff(tenant)
	if err != nil {
		return models.Staff{}, false, err
	}
	for _, m := range list {
		if m.ID == id {
			return m, true, nil
		}
	}
	return models.Staff{}, false, nil
}
