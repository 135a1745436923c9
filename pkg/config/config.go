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
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FAVORITES_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"FAVORITES_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"FAVORITES_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"FAVORITES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FAVORITES_DB_DSN"`
	Driver string `envconfig:"FAVORITES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FAVORITES_DB_HOST"`
	LegacyPort     int    `envconfig:"FAVORITES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FAVORITES_DB_USER"`
	LegacyPassword string `envconfig:"FAVORITES_DB_PASSWORD"`
	LegacyName     string `envconfig:"FAVORITES_DB_NAME"`
	LegacySSLMode  string `envconfig:"FAVORITES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FAVORITES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FAVORITES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FAVORITES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FAVORITES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite dialector was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

// RedisConfig configures the optional catalog cache. Leaving both URL and
// Address empty disables caching.
type RedisConfig struct {
	URL          string        `envconfig:"FAVORITES_REDIS_URL"`
	Address      string        `envconfig:"FAVORITES_REDIS_ADDR"`
	Password     string        `envconfig:"FAVORITES_REDIS_PASSWORD"`
	DB           int           `envconfig:"FAVORITES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FAVORITES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FAVORITES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FAVORITES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FAVORITES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FAVORITES_REDIS_WRITE_TIMEOUT" default:"5s"`
	CacheTTL     time.Duration `envconfig:"FAVORITES_REDIS_CACHE_TTL" default:"10m"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FAVORITES_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FAVORITES_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FAVORITES_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FAVORITES_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FAVORITES_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FAVORITES_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) normalize() error {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	switch driver {
	case "", DriverPostgres:
		db.Driver = DriverPostgres
	case DriverSQLite:
		db.Driver = DriverSQLite
		if db.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DriverSQLite)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
	return db.ensureDSN()
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
