package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig prefix shared by every setting.
	EnvPrefix = "pharmaseek"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "PHARMASEEK_DB_DSN"
	EnvDBHost = "PHARMASEEK_DB_HOST"
	EnvDBUser = "PHARMASEEK_DB_USER"
	EnvDBName = "PHARMASEEK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Search        SearchConfig
	History       HistoryConfig
	View          ViewConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
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
	Env          string `envconfig:"PHARMASEEK_APP_ENV" required:"true"`
	Port         string `envconfig:"PHARMASEEK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PHARMASEEK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHARMASEEK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the remote inventory API that owns durable state.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"PHARMASEEK_UPSTREAM_BASE_URL" default:"http://localhost:8080/api/v1"`
	Timeout time.Duration `envconfig:"PHARMASEEK_UPSTREAM_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	DSN    string `envconfig:"PHARMASEEK_DB_DSN"`
	Driver string `envconfig:"PHARMASEEK_DB_DRIVER" default:"sqlite"`

	LegacyHost     string `envconfig:"PHARMASEEK_DB_HOST"`
	LegacyPort     int    `envconfig:"PHARMASEEK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PHARMASEEK_DB_USER"`
	LegacyPassword string `envconfig:"PHARMASEEK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PHARMASEEK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PHARMASEEK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PHARMASEEK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHARMASEEK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHARMASEEK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHARMASEEK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the catalog store runs on the embedded driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

// GooseDialect maps the configured driver to the goose dialect name.
func (db DBConfig) GooseDialect() string {
	if db.IsSQLite() {
		return "sqlite3"
	}
	return "postgres"
}

type RedisConfig struct {
	URL          string        `envconfig:"PHARMASEEK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PHARMASEEK_REDIS_ADDR"`
	Password     string        `envconfig:"PHARMASEEK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHARMASEEK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHARMASEEK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHARMASEEK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHARMASEEK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHARMASEEK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHARMASEEK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PHARMASEEK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PHARMASEEK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PHARMASEEK_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"PHARMASEEK_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns how long the server-side session record lives.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type SearchConfig struct {
	MinQueryLength  int `envconfig:"PHARMASEEK_SEARCH_MIN_QUERY_LENGTH" default:"2"`
	SuggestionLimit int `envconfig:"PHARMASEEK_SEARCH_SUGGESTION_LIMIT" default:"5"`
}

type HistoryConfig struct {
	MaxEntries int `envconfig:"PHARMASEEK_HISTORY_MAX_ENTRIES" default:"50"`
	MaxPopular int `envconfig:"PHARMASEEK_HISTORY_MAX_POPULAR" default:"20"`
	TTLDays    int `envconfig:"PHARMASEEK_HISTORY_TTL_DAYS" default:"90"`
}

// TTL converts the retention window to a duration for the Redis keys.
func (h HistoryConfig) TTL() time.Duration {
	if h.TTLDays <= 0 {
		return 0
	}
	return time.Duration(h.TTLDays) * 24 * time.Hour
}

type ViewConfig struct {
	TTLDays int `envconfig:"PHARMASEEK_VIEW_TTL_DAYS" default:"90"`
}

// TTL converts the retention window to a duration for the view key.
func (v ViewConfig) TTL() time.Duration {
	if v.TTLDays <= 0 {
		return 0
	}
	return time.Duration(v.TTLDays) * 24 * time.Hour
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PHARMASEEK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PHARMASEEK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PHARMASEEK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PHARMASEEK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PHARMASEEK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PHARMASEEK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate     bool `envconfig:"PHARMASEEK_AUTO_MIGRATE" default:"false"`
	SearchAnalytics bool `envconfig:"PHARMASEEK_SEARCH_ANALYTICS" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"PHARMASEEK_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	SearchEventsTopic string `envconfig:"PHARMASEEK_PUBSUB_SEARCH_EVENTS_TOPIC" default:"ps-search-events"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:pharmaseek.db?cache=shared&_fk=1"
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
