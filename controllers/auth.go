package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"askbm-backend/models"
	"askbm-backend/services"
	"askbm-backend/store"
	"askbm-backend/utils"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"businessName" binding:"required"`
	BusinessType string `json:"businessType"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	UPIID        string `json:"upiId"`
	GSTIN        string `json:"gstIn"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates the provider account and the tenant's business profile,
// then opens a session scoped to the new tenant.
func (ct *Controller) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	bizType := models.BusinessType(input.BusinessType)
	if input.BusinessType == "" {
		bizType = models.BusinessSalon
	}
	if !bizType.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid business type")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := ct.Identity.SignUp(c.Request.Context(), email, input.Password); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Account creation failed: "+err.Error())
		return
	}

	profile := models.BusinessProfile{
		ID:               "biz_" + uuid.NewString(),
		Name:             input.BusinessName,
		Type:             bizType,
		Address:          input.Address,
		Phone:            input.Phone,
		Email:            email,
		UPIID:            input.UPIID,
		GSTIN:            input.GSTIN,
		SubscriptionPlan: models.PlanTrial,
		NotificationSettings: models.NotificationSettings{
			WhatsappAppt:    true,
			WhatsappPayment: true,
		},
	}
	if err := ct.Cache.SaveProfile(profile.ID, profile); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save business profile")
		return
	}
	if err := ct.Sessions.Login(email); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}
	if err := ct.Sessions.SetActiveTenant(profile.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}

	token, err := utils.GenerateToken(ct.Cfg.JWTSecret, email, profile.ID, false)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"profile": profile,
	})
}

// Login verifies credentials and resolves the tenant for this device. The
// super-admin address is checked strictly against the local bcrypt hash and
// never goes to the identity provider.
func (ct *Controller) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if ct.Cfg.AdminEmail != "" && email == strings.ToLower(ct.Cfg.AdminEmail) {
		ct.loginAdmin(c, email, input.Password)
		return
	}

	session, err := ct.Identity.SignInWithPassword(c.Request.Context(), email, input.Password)
	switch {
	case errors.Is(err, services.ErrEmailNotConfirmed):
		utils.RespondWithError(c, http.StatusForbidden, "Email not confirmed. Please check your inbox.")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		utils.RespondWithError(c, http.StatusBadGateway, "Identity provider unavailable")
		return
	}

	tenant, err := ct.resolveTenant(c.Request.Context(), email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve business")
		return
	}

	if err := ct.Sessions.Login(email); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}
	if err := ct.Sessions.SetActiveTenant(tenant); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}
	if session.AccessToken != "" {
		if err := ct.Sessions.SetProviderToken(session.AccessToken); err != nil {
			ct.Log.Warn("failed to store provider token", zap.Error(err))
		}
	}

	// Rehydrate in the background; the local cache serves reads meanwhile.
	if ct.Syncer != nil {
		go func(tenantID string) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			ct.Syncer.PullAll(ctx, tenantID)
		}(tenant)
	}

	token, err := utils.GenerateToken(ct.Cfg.JWTSecret, email, tenant, false)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"tenantId": tenant,
	})
}

func (ct *Controller) loginAdmin(c *gin.Context, email, password string) {
	if ct.Cfg.AdminPasswordHash == "" || !utils.CheckPasswordHash(password, ct.Cfg.AdminPasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := ct.Sessions.Login(email); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to open session")
		return
	}
	// Admin sessions carry no tenant scope.
	token, err := utils.GenerateToken(ct.Cfg.JWTSecret, email, "", true)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"isAdmin": true,
	})
}

// resolveTenant maps an identity to its business. A known email gets its
// remote profile pulled down; an unknown one gets a fresh empty tenant,
// matching a first sign-in from a new business.
func (ct *Controller) resolveTenant(ctx context.Context, email string) (string, error) {
	if ct.Remote != nil {
		profile, found, err := ct.Remote.FindProfileByEmail(ctx, email)
		if err != nil {
			ct.Log.Warn("remote profile lookup failed, continuing locally", zap.Error(err))
		} else if found {
			if err := ct.Cache.ReplaceProfile(profile.ID, profile); err != nil {
				return "", err
			}
			return profile.ID, nil
		}
	}

	// Reuse the locally cached tenant if this device already has one for
	// the same email.
	if tenant, ok := ct.Sessions.ActiveTenant(); ok && tenant != store.GuestTenantID {
		if profile, found, err := ct.Cache.Profile(tenant); err == nil && found && strings.EqualFold(profile.Email, email) {
			return tenant, nil
		}
	}

	profile := models.BusinessProfile{
		ID:               "biz_" + uuid.NewString(),
		Name:             "",
		Type:             models.BusinessSalon,
		Email:            email,
		SubscriptionPlan: models.PlanTrial,
	}
	if err := ct.Cache.SaveProfile(profile.ID, profile); err != nil {
		return "", err
	}
	return profile.ID, nil
}

// Guest opens the sandboxed demo session. Seeded data appears on first use.
func (ct *Controller) Guest(c *gin.Context) {
	tenant, err := ct.Sessions.LoginAsGuest()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to start guest session")
		return
	}

	token, err := utils.GenerateToken(ct.Cfg.JWTSecret, store.GuestEmail, tenant, false)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Guest session started",
		"token":    token,
		"tenantId": tenant,
	})
}

// Logout clears the device session and every cached tenant collection. The
// provider sign-out runs in the background and never blocks the response.
func (ct *Controller) Logout(c *gin.Context) {
	if providerToken, ok := ct.Sessions.ProviderToken(); ok {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := ct.Identity.SignOut(ctx, providerToken); err != nil {
				ct.Log.Warn("provider sign-out failed", zap.Error(err))
			}
		}()
	}

	if err := ct.Sessions.Logout(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear session")
		return
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me reports the authenticated identity and its business profile.
func (ct *Controller) Me(c *gin.Context) {
	identity, _ := c.Get("identity")
	tenantID, _ := c.Get("tenantId")
	isAdmin, _ := c.Get("isAdmin")

	resp := gin.H{
		"identity": identity,
		"tenantId": tenantID,
		"isAdmin":  isAdmin,
	}
	if tenant, ok := tenantID.(string); ok && tenant != "" {
		if profile, found, err := ct.Cache.Profile(tenant); err == nil && found {
			resp["profile"] = profile
		}
	}
	c.JSON(http.StatusOK, resp)
}

type EmailInput struct {
	Email string `json:"email" binding:"required,email"`
}

// Otp requests a passwordless one-time code.
func (ct *Controller) Otp(c *gin.Context) {
	var input EmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := ct.Identity.SignInWithOtp(c.Request.Context(), strings.ToLower(input.Email)); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send one-time code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "One-time code sent"})
}

// ForgotPassword triggers the provider's recovery mail.
func (ct *Controller) ForgotPassword(c *gin.Context) {
	var input struct {
		Email      string `json:"email" binding:"required,email"`
		RedirectTo string `json:"redirectTo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := ct.Identity.ResetPasswordForEmail(c.Request.Context(), strings.ToLower(input.Email), input.RedirectTo); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send recovery mail")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recovery mail sent"})
}

// ResetPassword sets a new password using the recovery access token.
func (ct *Controller) ResetPassword(c *gin.Context) {
	var input struct {
		AccessToken string `json:"accessToken"`
		Password    string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	accessToken := input.AccessToken
	if accessToken == "" {
		if stored, ok := ct.Sessions.ProviderToken(); ok {
			accessToken = stored
		}
	}
	if accessToken == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "No recovery token available")
		return
	}
	if err := ct.Identity.UpdateUser(c.Request.Context(), accessToken, input.Password); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to update password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, 24*3600, "/", "", true, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", true, true)
}
