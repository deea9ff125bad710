package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ECOCRAFT"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "ECOCRAFT_APP_ENV"
	EnvDBDSN  = "ECOCRAFT_DB_DSN"
	EnvDBHost = "ECOCRAFT_DB_HOST"
	EnvDBUser = "ECOCRAFT_DB_USER"
	EnvDBName = "ECOCRAFT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Facts        FactsConfig
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
	Env          string `envconfig:"ECOCRAFT_APP_ENV" required:"true"`
	Port         string `envconfig:"ECOCRAFT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ECOCRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOCRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ECOCRAFT_DB_DSN"`
	Driver string `envconfig:"ECOCRAFT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ECOCRAFT_DB_HOST"`
	LegacyPort     int    `envconfig:"ECOCRAFT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ECOCRAFT_DB_USER"`
	LegacyPassword string `envconfig:"ECOCRAFT_DB_PASSWORD"`
	LegacyName     string `envconfig:"ECOCRAFT_DB_NAME"`
	LegacySSLMode  string `envconfig:"ECOCRAFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ECOCRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ECOCRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ECOCRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ECOCRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ECOCRAFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ECOCRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"ECOCRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"ECOCRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ECOCRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ECOCRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ECOCRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ECOCRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ECOCRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// FactsConfig drives the upstream cat-facts client. The storefront pages used
// to pick their own timeouts; one configurable value replaces all of them.
type FactsConfig struct {
	Endpoint     string        `envconfig:"ECOCRAFT_FACTS_ENDPOINT" default:"https://meowfacts.herokuapp.com/"`
	Timeout      time.Duration `envconfig:"ECOCRAFT_FACTS_TIMEOUT" default:"8s"`
	DefaultCount int           `envconfig:"ECOCRAFT_FACTS_DEFAULT_COUNT" default:"6"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `envconfig:"ECOCRAFT_CHECKOUT_PROCESSING_DELAY" default:"2s"`
	SessionTTL      time.Duration `envconfig:"ECOCRAFT_CHECKOUT_SESSION_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ECOCRAFT_FEATURE_AUTO_MIGRATE" default:"true"`
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
