package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type InventoryInput struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category"`
	Stock         int    `json:"stock"`
	Unit          string `json:"unit"`
	MinStockAlert int    `json:"minStockAlert"`
	Vendor        string `json:"vendor"`
	LastRestocked string `json:"lastRestocked"`
	Image         string `json:"image"`
}

func (ct *Controller) GetInventory(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Inventory(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load inventory")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ct *Controller) CreateInventoryItem(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.LastRestocked != "" && !utils.ValidateDate(input.LastRestocked) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lastRestocked date")
		return
	}
	item := models.InventoryItem{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Category:      input.Category,
		Stock:         input.Stock,
		Unit:          input.Unit,
		MinStockAlert: input.MinStockAlert,
		Vendor:        input.Vendor,
		LastRestocked: input.LastRestocked,
		Image:         input.Image,
	}
	if err := ct.Cache.SaveInventoryItem(tenant, item); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save inventory item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ct *Controller) UpdateInventoryItem(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	list, err := ct.Cache.Inventory(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load inventory")
		return
	}
	found := false
	for _, it := range list {
		if it.ID == id {
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		return
	}

	var input InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.LastRestocked != "" && !utils.ValidateDate(input.LastRestocked) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lastRestocked date")
		return
	}
	item := models.InventoryItem{
		ID:            id,
		Name:          input.Name,
		Category:      input.Category,
		Stock:         input.Stock,
		Unit:          input.Unit,
		MinStockAlert: input.MinStockAlert,
		Vendor:        input.Vendor,
		LastRestocked: input.LastRestocked,
		Image:         input.Image,
	}
	if err := ct.Cache.SaveInventoryItem(tenant, item); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

type AdjustStockInput struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock applies a signed delta; stock floors at zero.
func (ct *Controller) AdjustStock(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	item, err := ct.Cache.AdjustStock(tenant, c.Param("id"), input.Delta)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}
