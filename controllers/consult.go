package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type AnalyzeFaceInput struct {
	CustomerName string `json:"customerName" binding:"required"`
	Image        string `json:"image" binding:"required"`
}

type MarketingInput struct {
	CustomerName string `json:"customerName" binding:"required"`
	ServiceName  string `json:"serviceName" binding:"required"`
}

// AnalyzeFace runs the AI consultation and stores the result. The assist
// layer degrades to a fixed analysis on any failure, so this handler always
// produces a consultation.
func (ct *Controller) AnalyzeFace(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input AnalyzeFaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := ct.Assist.AnalyzeFace(c.Request.Context(), input.Image)
	consultation := models.Consultation{
		ID:           uuid.NewString(),
		CustomerName: input.CustomerName,
		Result:       result,
		CreatedAt:    time.Now(),
	}
	if err := ct.Cache.AppendConsultation(tenant, consultation); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save consultation")
		return
	}
	c.JSON(http.StatusCreated, consultation)
}

func (ct *Controller) GetConsultations(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Consultations(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load consultations")
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarketingMessage drafts a follow-up message for a customer. Falls back to
// a canned message when the AI endpoint is unavailable.
func (ct *Controller) MarketingMessage(c *gin.Context) {
	if _, ok := ct.tenantID(c); !ok {
		return
	}
	var input MarketingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	msg := ct.Assist.MarketingMessage(c.Request.Context(), input.CustomerName, input.ServiceName)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// BusinessInsight summarises topline revenue and appointment counts through
// the AI endpoint.
func (ct *Controller) BusinessInsight(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	invoices, err := ct.Cache.Invoices(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load invoices")
		return
	}
	appts, err := ct.Cache.Appointments(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}
	var revenue int64
	for _, inv := range invoices {
		revenue += inv.Total
	}

	insight := ct.Assist.BusinessInsight(c.Request.Context(), revenue, len(appts))
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}
