package config

// EnvPrefix is passed to envconfig; individual vars carry the full
// NEXTSHOP_ name in their struct tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, exported for tests and tooling.
const (
	EnvAppEnv       = "NEXTSHOP_APP_ENV"
	EnvPort         = "NEXTSHOP_APP_PORT"
	EnvLogLevel     = "NEXTSHOP_LOG_LEVEL"
	EnvDBDSN        = "NEXTSHOP_DB_DSN"
	EnvDBHost       = "NEXTSHOP_DB_HOST"
	EnvDBUser       = "NEXTSHOP_DB_USER"
	EnvDBName       = "NEXTSHOP_DB_NAME"
	EnvRedisURL     = "NEXTSHOP_REDIS_URL"
	EnvStripeAPIKey = "NEXTSHOP_STRIPE_API_KEY"
	EnvStripeSecret = "NEXTSHOP_STRIPE_WEBHOOK_SECRET"
	EnvSuccessURL   = "NEXTSHOP_CHECKOUT_SUCCESS_URL"
	EnvCancelURL    = "NEXTSHOP_CHECKOUT_CANCEL_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
