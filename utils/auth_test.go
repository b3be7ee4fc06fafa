package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/utils"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("s3cret!", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := utils.GenerateToken("", "user@example.com", "biz1", false)
	require.Error(t, err)
}

func TestAuthMiddlewareUsesConfiguredSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	token, err := utils.GenerateToken("test-secret", "user@example.com", "biz1", true)
	require.NoError(t, err)

	r := gin.New()
	r.Use(utils.AuthMiddleware("test-secret"))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"identity": c.GetString("identity"),
			"tenantId": c.GetString("tenantId"),
			"isAdmin":  c.GetBool("isAdmin"),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "user@example.com")
	assert.Contains(t, w.Body.String(), "biz1")
	assert.Contains(t, w.Body.String(), "true")

	// A token signed with one secret never passes a middleware holding
	// another.
	other := gin.New()
	other.Use(utils.AuthMiddleware("other-secret"))
	other.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = httptest.NewRecorder()
	other.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
