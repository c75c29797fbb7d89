package config

const (
	EnvPrefix = "GIFTLIST"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names recognised by Load.
const (
	EnvAppEnv       = "GIFTLIST_APP_ENV"
	EnvPort         = "GIFTLIST_APP_PORT"
	EnvLogLevel     = "GIFTLIST_LOG_LEVEL"
	EnvLogFormat    = "GIFTLIST_LOG_FORMAT"
	EnvLogWarnStack = "GIFTLIST_LOG_WARN_STACK"

	EnvDBDSN      = "GIFTLIST_DB_DSN"
	EnvDBDriver   = "GIFTLIST_DB_DRIVER"
	EnvDBHost     = "GIFTLIST_DB_HOST"
	EnvDBPort     = "GIFTLIST_DB_PORT"
	EnvDBUser     = "GIFTLIST_DB_USER"
	EnvDBPassword = "GIFTLIST_DB_PASSWORD"
	EnvDBName     = "GIFTLIST_DB_NAME"
	EnvDBSSLMode  = "GIFTLIST_DB_SSLMODE"

	EnvRedisURL  = "GIFTLIST_REDIS_URL"
	EnvRedisAddr = "GIFTLIST_REDIS_ADDR"

	EnvJWTSecret = "GIFTLIST_JWT_SECRET"
	EnvJWTIssuer = "GIFTLIST_JWT_ISSUER"

	EnvCORSAllowedOrigins = "GIFTLIST_CORS_ALLOWED_ORIGINS"

	EnvUseSQLite   = "GIFTLIST_USE_SQLITE"
	EnvAutoMigrate = "GIFTLIST_AUTO_MIGRATE"
)
