package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askbm-backend/utils"
)

type LanguageInput struct {
	Language string `json:"language" binding:"required"`
}

// GetLanguage returns the device-level UI language. This is the one setting
// that survives logout.
func (ct *Controller) GetLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"language": ct.Store.Language()})
}

func (ct *Controller) SetLanguage(c *gin.Context) {
	var input LanguageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := ct.Store.SetLanguage(input.Language); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save language")
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": input.Language})
}
