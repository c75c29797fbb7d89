package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
}

// Load reads GIFTLIST_* variables from the environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if err := cfg.DB.resolveDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GIFTLIST_APP_ENV" required:"true"`
	Port         string `envconfig:"GIFTLIST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GIFTLIST_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"GIFTLIST_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"GIFTLIST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GIFTLIST_DB_DSN"`
	Driver string `envconfig:"GIFTLIST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GIFTLIST_DB_HOST"`
	LegacyPort     int    `envconfig:"GIFTLIST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GIFTLIST_DB_USER"`
	LegacyPassword string `envconfig:"GIFTLIST_DB_PASSWORD"`
	LegacyName     string `envconfig:"GIFTLIST_DB_NAME"`
	LegacySSLMode  string `envconfig:"GIFTLIST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GIFTLIST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GIFTLIST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GIFTLIST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GIFTLIST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is sqlite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"GIFTLIST_REDIS_URL"`
	Address      string        `envconfig:"GIFTLIST_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"GIFTLIST_REDIS_PASSWORD"`
	DB           int           `envconfig:"GIFTLIST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GIFTLIST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GIFTLIST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GIFTLIST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GIFTLIST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GIFTLIST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"GIFTLIST_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"GIFTLIST_JWT_ISSUER" default:"giftlist"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GIFTLIST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GIFTLIST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GIFTLIST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GIFTLIST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GIFTLIST_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"GIFTLIST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"GIFTLIST_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"GIFTLIST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"GIFTLIST_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"GIFTLIST_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"GIFTLIST_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GIFTLIST_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GIFTLIST_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GIFTLIST_AUTO_MIGRATE" default:"false"`
}

// resolveDSN fills DSN when it was not given explicitly: a local file for
// sqlite, otherwise a postgres URL assembled from the discrete DB_* vars.
func (db *DBConfig) resolveDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = "sqlite"
	}
	switch {
	case db.DSN != "":
		return nil
	case db.IsSQLite():
		db.DSN = "file:giftlist.db?cache=shared"
		return nil
	}

	if missing := db.missingLegacyVars(); len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}
	db.DSN = db.legacyDSN()
	return nil
}

func (db DBConfig) missingLegacyVars() []string {
	var missing []string
	for _, v := range []struct{ env, value string }{
		{EnvDBHost, db.LegacyHost},
		{EnvDBUser, db.LegacyUser},
		{EnvDBName, db.LegacyName},
	} {
		if strings.TrimSpace(v.value) == "" {
			missing = append(missing, v.env)
		}
	}
	return missing
}

func (db DBConfig) legacyDSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.User(db.LegacyUser),
		Host:   net.JoinHostPort(db.LegacyHost, strconv.Itoa(db.LegacyPort)),
		Path:   db.LegacyName,
	}
	if db.LegacyPassword != "" {
		dsn.User = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}
	if db.LegacySSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {db.LegacySSLMode}}.Encode()
	}
	return dsn.String()
}
