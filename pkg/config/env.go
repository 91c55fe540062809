package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "bookeasy"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Canonical environment variable names, kept in one place so tests and
// deployment manifests do not drift from the struct tags.
const (
	EnvAppEnv        = "BOOKEASY_APP_ENV"
	EnvPort          = "BOOKEASY_APP_PORT"
	EnvDBDSN         = "BOOKEASY_DB_DSN"
	EnvDBHost        = "BOOKEASY_DB_HOST"
	EnvDBUser        = "BOOKEASY_DB_USER"
	EnvDBName        = "BOOKEASY_DB_NAME"
	EnvRedisURL      = "BOOKEASY_REDIS_URL"
	EnvSessionSecret = "BOOKEASY_SESSION_SECRET"
)
