package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"BOOKEASY_APP_ENV" required:"true"`
	Port         string `envconfig:"BOOKEASY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BOOKEASY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKEASY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BOOKEASY_DB_DSN"`
	Driver string `envconfig:"BOOKEASY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BOOKEASY_DB_HOST"`
	LegacyPort     int    `envconfig:"BOOKEASY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BOOKEASY_DB_USER"`
	LegacyPassword string `envconfig:"BOOKEASY_DB_PASSWORD"`
	LegacyName     string `envconfig:"BOOKEASY_DB_NAME"`
	LegacySSLMode  string `envconfig:"BOOKEASY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BOOKEASY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOOKEASY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOOKEASY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOOKEASY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either BOOKEASY_DB_DSN or BOOKEASY_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"BOOKEASY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BOOKEASY_REDIS_ADDR"`
	Password     string        `envconfig:"BOOKEASY_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOOKEASY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOOKEASY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOOKEASY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOOKEASY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOOKEASY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOOKEASY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the signed session token and the two-scope session
/// mirror: the short-lived copy expires with the browser session while the
// durable copy survives it and acts as the restore source.
type SessionConfig struct {
	Secret          string        `envconfig:"BOOKEASY_SESSION_SECRET" required:"true"`
	Issuer          string        `envconfig:"BOOKEASY_SESSION_ISSUER" default:"bookeasy"`
	TokenTTLMinutes int           `envconfig:"BOOKEASY_SESSION_TOKEN_TTL_MINUTES" default:"720"`
	ShortTTL        time.Duration `envconfig:"BOOKEASY_SESSION_SHORT_TTL" default:"30m"`
	DurableTTL      time.Duration `envconfig:"BOOKEASY_SESSION_DURABLE_TTL" default:"720h"`
	IntentTTL       time.Duration `envconfig:"BOOKEASY_INTENT_TTL" default:"24h"`
}

// TokenTTL returns the session token lifetime configured in minutes.
func (s SessionConfig) TokenTTL() time.Duration {
	if s.TokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BOOKEASY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BOOKEASY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BOOKEASY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BOOKEASY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BOOKEASY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BOOKEASY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BOOKEASY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BOOKEASY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BOOKEASY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BOOKEASY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BOOKEASY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BOOKEASY_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BOOKEASY_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
}
