package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Stripe     StripeConfig
	Sendgrid   SendgridConfig
	Encryption EncryptionConfig
	Fees       FeesConfig
	Admin      AdminConfig
	Features   FeatureFlagsConfig
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
	Env          string `envconfig:"HOMECHEFF_APP_ENV" required:"true"`
	Port         string `envconfig:"HOMECHEFF_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"HOMECHEFF_APP_BASE_URL" default:"https://homecheff.nl"`
	LogLevel     string `envconfig:"HOMECHEFF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOMECHEFF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOMECHEFF_DB_DSN"`
	Driver string `envconfig:"HOMECHEFF_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOMECHEFF_DB_HOST"`
	LegacyPort     int    `envconfig:"HOMECHEFF_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOMECHEFF_DB_USER"`
	LegacyPassword string `envconfig:"HOMECHEFF_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOMECHEFF_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOMECHEFF_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOMECHEFF_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOMECHEFF_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOMECHEFF_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOMECHEFF_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOMECHEFF_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HOMECHEFF_REDIS_ADDR"`
	Password     string        `envconfig:"HOMECHEFF_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOMECHEFF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOMECHEFF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOMECHEFF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOMECHEFF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOMECHEFF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOMECHEFF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"HOMECHEFF_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"HOMECHEFF_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"HOMECHEFF_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"HOMECHEFF_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type StripeConfig struct {
	SecretKey     string `envconfig:"HOMECHEFF_STRIPE_SECRET_KEY"`
	WebhookSecret string `envconfig:"HOMECHEFF_STRIPE_WEBHOOK_SECRET"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"HOMECHEFF_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"HOMECHEFF_SENDGRID_FROM_EMAIL" default:"noreply@homecheff.nl"`
}

type EncryptionConfig struct {
	// SystemKey wraps per-conversation message keys at rest.
	SystemKey string `envconfig:"HOMECHEFF_ENCRYPTION_SYSTEM_KEY"`
}

type FeesConfig struct {
	// DefaultPlatformFeeBps applies when a seller has no active subscription.
	DefaultPlatformFeeBps int `envconfig:"HOMECHEFF_DEFAULT_PLATFORM_FEE_BPS" default:"1200"`
}

type AdminConfig struct {
	// CascadeDeleteTimeout bounds the bulk user deletion transaction.
	CascadeDeleteTimeout time.Duration `envconfig:"HOMECHEFF_CASCADE_DELETE_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HOMECHEFF_AUTO_MIGRATE" default:"false"`
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
