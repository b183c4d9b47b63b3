package config

// EnvPrefix namespaces every HomeCheff environment variable.
const EnvPrefix = "HOMECHEFF"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv    = "HOMECHEFF_APP_ENV"
	EnvPort      = "HOMECHEFF_APP_PORT"
	EnvDBDSN     = "HOMECHEFF_DB_DSN"
	EnvDBHost    = "HOMECHEFF_DB_HOST"
	EnvDBUser    = "HOMECHEFF_DB_USER"
	EnvDBName    = "HOMECHEFF_DB_NAME"
	EnvRedisURL  = "HOMECHEFF_REDIS_URL"
	EnvJWTSecret = "HOMECHEFF_JWT_SECRET"
	EnvJWTIssuer = "HOMECHEFF_JWT_ISSUER"
	EnvJWTExp    = "HOMECHEFF_JWT_EXPIRATION_MINUTES"
	EnvStripeKey = "HOMECHEFF_STRIPE_SECRET_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
