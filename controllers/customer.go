package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"askbm-backend/models"
	"askbm-backend/utils"
)

type CreateCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
	Photo string `json:"photo"`
}

type UpdateCustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
	Photo *string `json:"photo"`
}

func (ct *Controller) GetCustomers(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	list, err := ct.Cache.Customers(tenant)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ct *Controller) CreateCustomer(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if _, exists, err := ct.Cache.FindCustomerByPhone(tenant, input.Phone); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	} else if exists {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	}

	customer := models.Customer{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		Notes: input.Notes,
		Photo: input.Photo,
	}
	if err := ct.Cache.SaveCustomer(tenant, customer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (ct *Controller) GetCustomer(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	customer, found, err := ct.findCustomer(tenant, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer merges the provided fields. Visit and loyalty counters are
// not editable here; billing owns them.
func (ct *Controller) UpdateCustomer(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	customer, found, err := ct.findCustomer(tenant, c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.Photo != nil {
		customer.Photo = *input.Photo
	}

	if err := ct.Cache.SaveCustomer(tenant, customer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// LookupCustomerByPhone backs the walk-in billing flow.
func (ct *Controller) LookupCustomerByPhone(c *gin.Context) {
	tenant, ok := ct.tenantID(c)
	if !ok {
		return
	}
	phone := c.Query("phone")
	if phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "phone query parameter required")
		return
	}
	customer, found, err := ct.Cache.FindCustomerByPhone(tenant, phone)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (ct *Controller) findCustomer(tenant, id string) (models.Customer, bool, error) {
	list, err := ct.Cache.Customers(tenant)
	if err != nil {
		return models.Customer{}, false, err
	}
	for _, cu := range list {
		if cu.ID == id {
			return cu, true, nil
		}
	}
	return models.Customer{}, false, nil
}
