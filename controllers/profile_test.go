package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askbm-backend/models"
	"askbm-backend/store"
)

func seedProfileFixture(t *testing.T, cache *store.Cache) models.BusinessProfile {
	t.Helper()
	profile := models.BusinessProfile{
		ID:               testTenant,
		Name:             "Luxe Salon",
		Type:             models.BusinessSalon,
		Email:            "user@example.com",
		SubscriptionPlan: models.PlanTrial,
	}
	require.NoError(t, cache.SaveProfile(testTenant, profile))
	return profile
}

func TestUpdateProfile_ActivatesSubscription(t *testing.T) {
	ct, cache := newTestController(t)
	seedProfileFixture(t, cache)

	w := doJSON(t, ct.UpdateProfile, http.MethodPut, "/api/profile",
		gin.H{"isSubscribed": true, "subscriptionPlan": "monthly"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	profile, found, err := cache.Profile(testTenant)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, profile.IsSubscribed)
	assert.Equal(t, models.PlanMonthly, profile.SubscriptionPlan)
}

func TestUpdateProfile_CancelsSubscription(t *testing.T) {
	ct, cache := newTestController(t)
	seedProfileFixture(t, cache)

	w := doJSON(t, ct.UpdateProfile, http.MethodPut, "/api/profile",
		gin.H{"isSubscribed": true, "subscriptionPlan": "yearly"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, ct.UpdateProfile, http.MethodPut, "/api/profile",
		gin.H{"isSubscribed": false, "subscriptionPlan": "trial"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	profile, _, err := cache.Profile(testTenant)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
	assert.Equal(t, models.PlanTrial, profile.SubscriptionPlan)
}

func TestUpdateProfile_RejectsUnknownPlan(t *testing.T) {
	ct, cache := newTestController(t)
	seedProfileFixture(t, cache)

	w := doJSON(t, ct.UpdateProfile, http.MethodPut, "/api/profile",
		gin.H{"isSubscribed": true, "subscriptionPlan": "lifetime"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	profile, _, err := cache.Profile(testTenant)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
	assert.Equal(t, models.PlanTrial, profile.SubscriptionPlan)
}

func TestUpdateProfile_SubscriptionUntouchedWhenOmitted(t *testing.T) {
	ct, cache := newTestController(t)
	seedProfileFixture(t, cache)

	w := doJSON(t, ct.UpdateProfile, http.MethodPut, "/api/profile",
		gin.H{"isSubscribed": true, "subscriptionPlan": "monthly"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, ct.UpdateProfile, http.MethodPut, "/api/profile",
		gin.H{"name": "Luxe Salon & Spa"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	profile, _, err := cache.Profile(testTenant)
	require.NoError(t, err)
	assert.Equal(t, "Luxe Salon & Spa", profile.Name)
	assert.True(t, profile.IsSubscribed)
	assert.Equal(t, models.PlanMonthly, profile.SubscriptionPlan)
}

func TestSetBusinessApprovalFailClosed(t *testing.T) {
	ct, _ := newTestController(t)

	w := doJSON(t, ct.SetBusinessApproval, http.MethodPut, "/api/admin/businesses/biz_x/approval",
		gin.H{"approved": true}, gin.Params{{Key: "id", Value: "biz_x"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
