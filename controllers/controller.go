package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"askbm-backend/config"
	"askbm-backend/mirror"
	"askbm-backend/services"
	"askbm-backend/store"
	"askbm-backend/utils"
)

// Controller carries every dependency the HTTP handlers need. One instance
// is built in main and shared across routes; nothing is reached through
// package globals.
type Controller struct {
	Cfg      config.Config
	Log      *zap.Logger
	Store    *store.Store
	Sessions *store.SessionStore
	Cache    *store.Cache
	Remote   *mirror.Client
	Syncer   *mirror.Syncer
	Identity *services.IdentityClient
	Assist   *services.AssistClient
	Notifier *services.Notifier
}

func NewController(cfg config.Config, log *zap.Logger, st *store.Store, sessions *store.SessionStore,
	cache *store.Cache, remote *mirror.Client, syncer *mirror.Syncer,
	identity *services.IdentityClient, assist *services.AssistClient, notifier *services.Notifier) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		Cfg:      cfg,
		Log:      log,
		Store:    st,
		Sessions: sessions,
		Cache:    cache,
		Remote:   remote,
		Syncer:   syncer,
		Identity: identity,
		Assist:   assist,
		Notifier: notifier,
	}
}

// tenantID pulls the tenant scope out of the verified token claims. Every
// tenant-data handler starts here; a token without a tenant (the super-admin
// session) cannot touch tenant collections.
func (ct *Controller) tenantID(c *gin.Context) (string, bool) {
	v, exists := c.Get("tenantId")
	tenant, _ := v.(string)
	if !exists || tenant == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tenant not resolved for this session")
		return "", false
	}
	return tenant, true
}

// requireAdmin fails closed: anything short of a verified admin claim is a
// 403.
func (ct *Controller) requireAdmin(c *gin.Context) bool {
	v, exists := c.Get("isAdmin")
	admin, _ := v.(bool)
	if !exists || !admin {
		utils.RespondWithError(c, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}
