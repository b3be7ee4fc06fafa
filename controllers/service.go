package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type ServiceInput struct {
	Name            string `json:"name" binding:"required"`
	Price           int64  `json:"price" binding:"required,min=0"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=1"`
	Description     string `json:"description"`
	Image           string `json:"image"`
}

func (ct *Controller) GetServices(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Services(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load services")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ct *Controller) CreateService(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	svc := models.Service{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
		Image:           input.Image,
	}
	if err := ct.Cache.SaveService(tenant, svc); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save service")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (ct *Controller) UpdateService(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	list, err := ct.Cache.Services(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load services")
		return
	}
	var existing *models.Service
	for i := range list {
		if list[i].ID == id {
			existing = &list[i]
			break
		}
	}
	if existing == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	svc := models.Service{
		ID:              id,
		Name:            input.Name,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Description:     input.Description,
		Image:           input.Image,
	}
	if err := ct.Cache.SaveService(tenant, svc); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save service")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (ct *Controller) DeleteService(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	if err := ct.Cache.DeleteService(tenant, c.Param("id")); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
