package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type UpdateProfileInput struct {
	Name             *string `json:"name"`
	Type             *string `json:"type"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	UPIID            *string `json:"upiId"`
	GSTIN            *string `json:"gstIn"`
	Logo             *string `json:"logo"`
	InvoiceTerms     *string `json:"invoiceTerms"`
	IsSubscribed     *bool   `json:"isSubscribed"`
	SubscriptionPlan *string `json:"subscriptionPlan"`
}

func (ct *Controller) GetProfile(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	profile, found, err := ct.Cache.Profile(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business profile")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile merges the provided fields into the tenant profile. The
// profile id and owner email never change here.
func (ct *Controller) UpdateProfile(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	profile, found, err := ct.Cache.Profile(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business profile")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Type != nil {
		bizType := models.BusinessType(*input.Type)
		if !bizType.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid business type")
			return
		}
		profile.Type = bizType
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		profile.Phone = *input.Phone
	}
	if input.UPIID != nil {
		profile.UPIID = *input.UPIID
	}
	if input.GSTIN != nil {
		profile.GSTIN = *input.GSTIN
	}
	if input.Logo != nil {
		profile.Logo = *input.Logo
	}
	if input.InvoiceTerms != nil {
		profile.InvoiceTerms = *input.InvoiceTerms
	}
	if input.SubscriptionPlan != nil {
		plan := models.SubscriptionPlan(*input.SubscriptionPlan)
		if !plan.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid subscription plan")
			return
		}
		profile.SubscriptionPlan = plan
	}
	if input.IsSubscribed != nil {
		profile.IsSubscribed = *input.IsSubscribed
	}

	if err := ct.Cache.SaveProfile(tenant, profile); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save business profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateNotificationSettings replaces the four channel toggles.
func (ct *Controller) UpdateNotificationSettings(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	profile, found, err := ct.Cache.Profile(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business profile")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		return
	}

	var input models.NotificationSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	profile.NotificationSettings = input
	if err := ct.Cache.SaveProfile(tenant, profile); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save business profile")
		return
	}
	c.JSON(http.StatusOK, profile.NotificationSettings)
}
