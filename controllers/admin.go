package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"askbm-backend/mirror"
	"askbm-backend/utils"
)

// ListBusinesses is the super-admin view over every registered business.
// Cross-tenant reads only ever come from the remote store; the local cache
// never holds more than one tenant's data.
func (ct *Controller) ListBusinesses(c *gin.Context) {
	if !ct.requireAdmin(c) {
		return
	}
	if ct.Remote == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Remote store not configured")
		return
	}
	list, err := ct.Remote.ListAllTenants(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to load businesses")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAllCustomers is the super-admin view over every customer across
// tenants.
func (ct *Controller) ListAllCustomers(c *gin.Context) {
	if !ct.requireAdmin(c) {
		return
	}
	if ct.Remote == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Remote store not configured")
		return
	}
	list, err := ct.Remote.ListAllCustomersAcrossTenants(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to load customers")
		return
	}
	c.JSON(http.StatusOK, list)
}

type ApprovalInput struct {
	Approved *bool `json:"approved" binding:"required"`
}

// SetBusinessApproval lets the super-admin approve or suspend a business.
// The write goes straight to the remote store; the owning device sees the
// new flag on its next pull.
func (ct *Controller) SetBusinessApproval(c *gin.Context) {
	if !ct.requireAdmin(c) {
		return
	}
	if ct.Remote == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Remote store not configured")
		return
	}
	var input ApprovalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	id := c.Param("id")
	if err := ct.Remote.SetApproved(c.Request.Context(), id, *input.Approved); err != nil {
		if errors.Is(err, mirror.ErrTenantNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
			return
		}
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to update approval")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "approved": *input.Approved})
}
