package config

import "time"

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Audit     AuditConfig     `yaml:"audit"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// AppConfig holds deployment-wide settings.
type AppConfig struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"development"`
}

// IsProduction reports whether the app runs in production mode: secure
// cookies, redacted internal errors.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Session-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret            string        `yaml:"jwt_secret"             env:"AUTH_JWT_SECRET"             env-required:"true"`
	JWTIssuer            string        `yaml:"jwt_issuer"             env:"AUTH_JWT_ISSUER"             env-default:"zine"`
	AccessTokenTTL       time.Duration `yaml:"access_token_ttl"       env:"AUTH_ACCESS_TOKEN_TTL"       env-default:"15m"`
	RefreshTokenTTL      time.Duration `yaml:"refresh_token_ttl"      env:"AUTH_REFRESH_TOKEN_TTL"      env-default:"168h"`
	RememberMeTTL        time.Duration `yaml:"remember_me_ttl"        env:"AUTH_REMEMBER_ME_TTL"        env-default:"720h"`
	PasswordHashCost     int           `yaml:"password_hash_cost"     env:"AUTH_PASSWORD_HASH_COST"     env-default:"12"`
	RevokeOnRotate       bool          `yaml:"revoke_on_rotate"       env:"AUTH_REVOKE_ON_ROTATE"       env-default:"true"`
	TrustUpstreamHeaders bool          `yaml:"trust_upstream_headers" env:"AUTH_TRUST_UPSTREAM_HEADERS" env-default:"false"`
	CleanupInterval      time.Duration `yaml:"cleanup_interval"       env:"AUTH_CLEANUP_INTERVAL"       env-default:"1h"`
}

// RefreshTTL returns the refresh token lifetime for a login.
func (c AuthConfig) RefreshTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return c.RememberMeTTL
	}
	return c.RefreshTokenTTL
}

// QuotaConfig is a fixed-window quota: Limit requests per Window.
type QuotaConfig struct {
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
}

// RateLimitConfig holds the named quotas and the backing store selection.
type RateLimitConfig struct {
	Store         string        `yaml:"store"          env:"RATE_LIMIT_STORE"          env-default:"memory"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"RATE_LIMIT_SWEEP_INTERVAL" env-default:"1m"`
	KeyPrefix     string        `yaml:"key_prefix"     env:"RATE_LIMIT_KEY_PREFIX"     env-default:"zine:rl:"`

	Auth       QuotaConfig `yaml:"auth"       env-prefix:"RATE_LIMIT_AUTH_"`
	Register   QuotaConfig `yaml:"register"   env-prefix:"RATE_LIMIT_REGISTER_"`
	Upload     QuotaConfig `yaml:"upload"     env-prefix:"RATE_LIMIT_UPLOAD_"`
	Submission QuotaConfig `yaml:"submission" env-prefix:"RATE_LIMIT_SUBMISSION_"`

	// Global per-IP burst guard in front of every route.
	ThrottleRPS   float64 `yaml:"throttle_rps"   env:"RATE_LIMIT_THROTTLE_RPS"   env-default:"20"`
	ThrottleBurst int     `yaml:"throttle_burst" env:"RATE_LIMIT_THROTTLE_BURST" env-default:"40"`
}

// AuditConfig controls what happens when an audit write fails.
type AuditConfig struct {
	FailurePolicy string `yaml:"failure_policy" env:"AUDIT_FAILURE_POLICY" env-default:"strict"`
}

// Audit failure policies.
const (
	AuditPolicyStrict     = "strict"
	AuditPolicyBestEffort = "best_effort"
)

// RedisConfig is used when rate_limit.store is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
