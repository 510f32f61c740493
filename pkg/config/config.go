package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the platform.
const EnvPrefix = "LABELWORKS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Cron         CronConfig
	Orders       OrdersConfig
	Mailer       MailerConfig
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
	Env          string `envconfig:"LABELWORKS_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"LABELWORKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LABELWORKS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LABELWORKS_SERVICE_KIND" default:"cron-worker"`
}

type DBConfig struct {
	DSN    string `envconfig:"LABELWORKS_DB_DSN"`
	Driver string `envconfig:"LABELWORKS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"LABELWORKS_DB_HOST"`
	Port     int    `envconfig:"LABELWORKS_DB_PORT" default:"5432"`
	User     string `envconfig:"LABELWORKS_DB_USER"`
	Password string `envconfig:"LABELWORKS_DB_PASSWORD"`
	Name     string `envconfig:"LABELWORKS_DB_NAME"`
	SSLMode  string `envconfig:"LABELWORKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LABELWORKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LABELWORKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LABELWORKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LABELWORKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LABELWORKS_REDIS_URL"`
	Address      string        `envconfig:"LABELWORKS_REDIS_ADDR"`
	Password     string        `envconfig:"LABELWORKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LABELWORKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LABELWORKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LABELWORKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LABELWORKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LABELWORKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LABELWORKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"LABELWORKS_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"LABELWORKS_CRON_LOCK_TTL" default:"25h"`
}

type OrdersConfig struct {
	// RecurringDeliveryLeadDays is added to a recurring generation date to
	// produce the draft's delivery date. It must cover the 14-day production
	// lead so derived production starts land after generation.
	RecurringDeliveryLeadDays int `envconfig:"LABELWORKS_RECURRING_DELIVERY_LEAD_DAYS" default:"21"`
}

type MailerConfig struct {
	FromAddress string `envconfig:"LABELWORKS_MAILER_FROM" default:"orders@labelworks.example"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LABELWORKS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LABELWORKS_AUTO_MIGRATE" default:"false"`
}
