package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	FeatureFlags  FeatureFlagsConfig
	CampaignCache CampaignCacheConfig
	Cron          CronConfig
	Mail          MailConfig
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
	Env          string `envconfig:"ADBRIDGE_APP_ENV" required:"true"`
	Port         string `envconfig:"ADBRIDGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ADBRIDGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ADBRIDGE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"ADBRIDGE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ADBRIDGE_DB_DSN"`

	Host     string `envconfig:"ADBRIDGE_DB_HOST"`
	Port     int    `envconfig:"ADBRIDGE_DB_PORT" default:"5432"`
	User     string `envconfig:"ADBRIDGE_DB_USER"`
	Password string `envconfig:"ADBRIDGE_DB_PASSWORD"`
	Name     string `envconfig:"ADBRIDGE_DB_NAME"`
	SSLMode  string `envconfig:"ADBRIDGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ADBRIDGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ADBRIDGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ADBRIDGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ADBRIDGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ADBRIDGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ADBRIDGE_REDIS_ADDR"`
	Password     string        `envconfig:"ADBRIDGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ADBRIDGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ADBRIDGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ADBRIDGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ADBRIDGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ADBRIDGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ADBRIDGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ADBRIDGE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ADBRIDGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ADBRIDGE_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ADBRIDGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ADBRIDGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ADBRIDGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ADBRIDGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ADBRIDGE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ADBRIDGE_AUTO_MIGRATE" default:"false"`
}

// CampaignCacheConfig tunes the public campaign listing cache. A zero TTL
// means the cached payload never expires and is only replaced by explicit
// invalidation after campaign writes.
type CampaignCacheConfig struct {
	TTL time.Duration `envconfig:"ADBRIDGE_CAMPAIGN_CACHE_TTL" default:"0"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"ADBRIDGE_CRON_INTERVAL" default:"24h"`
}

type MailConfig struct {
	AWSRegion string `envconfig:"ADBRIDGE_SES_REGION" default:"us-east-1"`
	From      string `envconfig:"ADBRIDGE_MAIL_FROM" default:"noreply@adbridge.io"`
	Disabled  bool   `envconfig:"ADBRIDGE_MAIL_DISABLED" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"ADBRIDGE_DB_HOST": db.Host,
		"ADBRIDGE_DB_USER": db.User,
		"ADBRIDGE_DB_NAME": db.Name,
	}
	for _, key := range []string{"ADBRIDGE_DB_HOST", "ADBRIDGE_DB_USER", "ADBRIDGE_DB_NAME"} {
		if parts[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either ADBRIDGE_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
