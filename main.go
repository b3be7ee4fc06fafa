package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"askbm-backend/config"
	"askbm-backend/controllers"
	"askbm-backend/mirror"
	"askbm-backend/routes"
	"askbm-backend/services"
	"askbm-backend/store"
	"askbm-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, "askbm-backend")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// ADMIN_PASSWORD is a bootstrap convenience; production sets
	// ADMIN_PASSWORD_HASH directly.
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword != "" {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			logger.Fatal("failed to hash admin password", zap.Error(err))
		}
		cfg.AdminPasswordHash = hash
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to open local store", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	defer st.Close()

	// The remote mirror is optional; without one the device runs fully
	// local and the outbox drops its operations.
	var remote *mirror.Client
	if cfg.DBURL != "" {
		remote, err = mirror.NewClient(cfg.DBURL, logger)
		if err != nil {
			logger.Warn("remote store unreachable, running local-only", zap.Error(err))
			remote = nil
		} else if err := remote.AutoMigrate(); err != nil {
			logger.Warn("remote migration failed, running local-only", zap.Error(err))
			remote = nil
		}
	}

	var pusher mirror.Pusher
	if remote != nil {
		pusher = remote
	}
	outbox := mirror.NewOutbox(pusher, mirror.OutboxConfig{}, logger)
	defer outbox.Close()

	cache := store.NewCache(st, outbox, logger)
	sessions := store.NewSessionStore(st, cfg.AdminEmail)

	var syncer *mirror.Syncer
	if remote != nil {
		syncer = mirror.NewSyncer(remote, cache, logger)
	}

	identity := services.NewIdentityClient(cfg.IdentityURL, cfg.IdentityAPIKey, logger)
	assist := services.NewAssistClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, logger)
	notifier := services.NewNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
		cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber, logger)

	ct := controllers.NewController(cfg, logger, st, sessions, cache, remote, syncer,
		identity, assist, notifier)

	var puller services.Puller
	if syncer != nil {
		puller = syncer
	}
	scheduler := services.NewScheduler(cache, sessions, puller, sessions.ActiveTenant, logger)
	scheduler.Start()
	defer scheduler.Stop()

	r := routes.SetupRouter(ct, logger)
	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
