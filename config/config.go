package config

import (
	"os"
	"strings"
)

// Config is the explicit configuration object handed to every component at
// startup. Values come from the environment (a .env file is loaded in main).
type Config struct {
	Port    string
	DataDir string

	// Remote relational store. Empty means the device runs without a
	// remote mirror.
	DBURL string

	// Session tokens for the HTTP surface.
	JWTSecret string

	// Super-admin identity. The password hash is bcrypt; the strict check
	// happens locally at login. A plaintext AdminPassword is only consulted
	// when no hash is configured, and is hashed once at startup.
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string

	// External identity provider. Empty base URL disables remote
	// verification (local MVP mode).
	IdentityURL    string
	IdentityAPIKey string

	// Generative AI endpoint.
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	// Twilio notification channel.
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string

	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		Port:                 getenv("PORT", "8080"),
		DataDir:              getenv("DATA_DIR", "./data"),
		DBURL:                os.Getenv("DB_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AdminEmail:           getenv("ADMIN_EMAIL", "askmultinationalcompany@gmail.com"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		IdentityURL:          os.Getenv("IDENTITY_URL"),
		IdentityAPIKey:       os.Getenv("IDENTITY_API_KEY"),
		AIBaseURL:            getenv("AI_BASE_URL", "https://generativelanguage.googleapis.com"),
		AIAPIKey:             os.Getenv("AI_API_KEY"),
		AIModel:              getenv("AI_MODEL", "gemini-1.5-flash"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		LogFormat:            getenv("LOG_FORMAT", "console"),
	}

	origins := getenv("CORS_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
