package config

const (
	EnvPrefix = "FAVORITES"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv       = "FAVORITES_APP_ENV"
	EnvLogLevel     = "FAVORITES_LOG_LEVEL"
	EnvLogFormat    = "FAVORITES_LOG_FORMAT"
	EnvLogWarnStack = "FAVORITES_LOG_WARN_STACK"

	EnvDBDSN      = "FAVORITES_DB_DSN"
	EnvDBDriver   = "FAVORITES_DB_DRIVER"
	EnvDBHost     = "FAVORITES_DB_HOST"
	EnvDBPort     = "FAVORITES_DB_PORT"
	EnvDBUser     = "FAVORITES_DB_USER"
	EnvDBPassword = "FAVORITES_DB_PASSWORD"
	EnvDBName     = "FAVORITES_DB_NAME"
	EnvDBSSLMode  = "FAVORITES_DB_SSLMODE"

	EnvRedisURL      = "FAVORITES_REDIS_URL"
	EnvRedisAddr     = "FAVORITES_REDIS_ADDR"
	EnvRedisCacheTTL = "FAVORITES_REDIS_CACHE_TTL"

	EnvAutoMigrate = "FAVORITES_AUTO_MIGRATE"
)

// legacyDBEnvVars are required together when no DSN is provided.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
