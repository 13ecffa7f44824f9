package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NEXTSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"NEXTSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NEXTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NEXTSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NEXTSHOP_DB_DSN"`
	Driver string `envconfig:"NEXTSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NEXTSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"NEXTSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NEXTSHOP_DB_USER"`
	LegacyPassword string `envconfig:"NEXTSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"NEXTSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"NEXTSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NEXTSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NEXTSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NEXTSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NEXTSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NEXTSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NEXTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"NEXTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"NEXTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NEXTSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NEXTSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NEXTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NEXTSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NEXTSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey        string        `envconfig:"NEXTSHOP_STRIPE_API_KEY" required:"true"`
	WebhookSecret string        `envconfig:"NEXTSHOP_STRIPE_WEBHOOK_SECRET" required:"true"`
	Env           string        `envconfig:"NEXTSHOP_STRIPE_ENV" default:"test"`
	SuccessURL    string        `envconfig:"NEXTSHOP_CHECKOUT_SUCCESS_URL" required:"true"`
	CancelURL     string        `envconfig:"NEXTSHOP_CHECKOUT_CANCEL_URL" required:"true"`
	EventGuardTTL time.Duration `envconfig:"NEXTSHOP_STRIPE_EVENT_GUARD_TTL" default:"720h"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CheckoutConfig struct {
	Currency        string `envconfig:"NEXTSHOP_CHECKOUT_CURRENCY" default:"usd"`
	ServiceFeeCents int64  `envconfig:"NEXTSHOP_CHECKOUT_SERVICE_FEE_CENTS" default:"500"`
	ServiceFeeLabel string `envconfig:"NEXTSHOP_CHECKOUT_SERVICE_FEE_LABEL" default:"VAT Fee"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"NEXTSHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
