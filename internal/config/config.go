package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/cloudstay/rental-service/internal/utils"
)

const (
	OrganizationName    = "CloudStay"
	LDConnectionTimeout = 5 * time.Second
)

type Config struct {
	AppName string
	AppPort string
	Env     string

	DatabaseURL string

	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string

	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string
	AdminEmail        string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	JWTPublicKeyPEM string

	// Feature-flag snapshots, resolved once at startup.
	LDFlag_RequireVerifiedProperties bool
	LDFlag_SendgridSandboxMode       bool
}

// LoadConfig reads .env (best effort), then the process environment. Missing
// required values are fatal. LaunchDarkly is optional: without LD_SDK_KEY the
// flags fall back to their env-var defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:              getEnvOr("APP_NAME", "rental-service"),
		AppPort:              getEnvOr("APP_PORT", "8080"),
		Env:                  getEnvOr("ENV", "development"),
		DatabaseURL:          mustGetEnv("DATABASE_URL"),
		StripeSecretKey:      mustGetEnv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  mustGetEnv("STRIPE_WEBHOOK_SECRET"),
		SendgridAPIKey:       mustGetEnv("SENDGRID_API_KEY"),
		SendgridFromEmail:    mustGetEnv("SENDGRID_FROM_EMAIL"),
		SendgridFromName:     getEnvOr("SENDGRID_FROM_NAME", OrganizationName),
		AdminEmail:           getEnvOr("ADMIN_EMAIL", ""),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:     os.Getenv("TWILIO_FROM_NUMBER"),
		JWTPublicKeyPEM:      mustGetEnv("JWT_PUBLIC_KEY"),
	}

	cfg.LDFlag_RequireVerifiedProperties = getEnvBool("REQUIRE_VERIFIED_PROPERTIES", false)
	cfg.LDFlag_SendgridSandboxMode = getEnvBool("SENDGRID_SANDBOX_MODE", false)
	cfg.resolveFeatureFlags()

	utils.Logger.Infof("Loaded config for %s (%s)", cfg.AppName, cfg.Env)
	return cfg
}

// resolveFeatureFlags snapshots LaunchDarkly flags over the env defaults
// when an SDK key is configured.
func (c *Config) resolveFeatureFlags() {
	sdkKey := os.Getenv("LD_SDK_KEY")
	if sdkKey == "" {
		utils.Logger.Debug("LD_SDK_KEY not set; using env feature-flag defaults")
		return
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to create LaunchDarkly client; using env feature-flag defaults")
		return
	}
	defer ldClient.Close()
	if !ldClient.Initialized() {
		utils.Logger.Warn("LaunchDarkly client failed to initialize; using env feature-flag defaults")
		return
	}

	ldCtx := ldcontext.NewWithKind("service", c.AppName)

	if v, err := ldClient.BoolVariation("require_verified_properties", ldCtx, c.LDFlag_RequireVerifiedProperties); err == nil {
		c.LDFlag_RequireVerifiedProperties = v
	}
	if v, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ldCtx, c.LDFlag_SendgridSandboxMode); err == nil {
		c.LDFlag_SendgridSandboxMode = v
	}

	utils.Logger.Debugf("Feature flags: require_verified_properties=%t sendgrid_sandbox_mode=%t",
		c.LDFlag_RequireVerifiedProperties, c.LDFlag_SendgridSandboxMode)
}

func mustGetEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Warnf("%s is not a valid bool (%q); using %t", key, v, fallback)
		return fallback
	}
	return b
}
