package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (e.g. QUOTES_DATABASE_HOST)
const EnvPrefix = "QUOTES"

// developmentJWTSecret lets a development server boot without configuration
const developmentJWTSecret = "development-only-secret-change-me-please"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Cookie    CookieConfig    `mapstructure:"cookie"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	PDF       PDFConfig       `mapstructure:"pdf"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

// DatabaseConfig holds the PostgreSQL connection. URL wins over the discrete fields.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds session token settings
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	Issuer     string        `mapstructure:"issuer"`
}

// CookieConfig holds the session cookie attributes
type CookieConfig struct {
	Name     string `mapstructure:"name"`
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"` // strict, lax, none
}

type HTTPConfig struct {
	ReadTimeout           time.Duration `mapstructure:"read_timeout"`
	WriteTimeout          time.Duration `mapstructure:"write_timeout"`
	IdleTimeout           time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes        int           `mapstructure:"max_header_bytes"`
	MaxBodySize           int64         `mapstructure:"max_body_size"`
	RateLimitEnabled      bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests     int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow       time.Duration `mapstructure:"rate_limit_window"`
	AuthRateLimitEnabled  bool          `mapstructure:"auth_rate_limit_enabled"`
	AuthRateLimitRequests int           `mapstructure:"auth_rate_limit_requests"`
	AuthRateLimitWindow   time.Duration `mapstructure:"auth_rate_limit_window"`
	CORSAllowOrigins      []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods      []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders      []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies        []string      `mapstructure:"trusted_proxies"`
}

// StorageConfig points at the S3 compatible bucket holding product images
type StorageConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Endpoint          string        `mapstructure:"endpoint"`
	Region            string        `mapstructure:"region"`
	Bucket            string        `mapstructure:"bucket"`
	AccessKey         string        `mapstructure:"access_key"`
	SecretKey         string        `mapstructure:"secret_key"`
	UseSSL            bool          `mapstructure:"use_ssl"`
	UsePathStyle      bool          `mapstructure:"use_path_style"`
	PresignExpiration time.Duration `mapstructure:"presign_expiration"`
	PublicBaseURL     string        `mapstructure:"public_base_url"`
}

// PDFConfig holds quotation PDF rendering settings
type PDFConfig struct {
	ChromeRemoteURL string        `mapstructure:"chrome_remote_url"`
	NoSandbox       bool          `mapstructure:"no_sandbox"`
	RenderTimeout   time.Duration `mapstructure:"render_timeout"`
	NavTimeout      time.Duration `mapstructure:"nav_timeout"`
	LogoPath        string        `mapstructure:"logo_path"`
}

type DashboardConfig struct {
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	LatestLimit    int           `mapstructure:"latest_limit"`
	RevenueMonths  int           `mapstructure:"revenue_months"`
	DefaultPerPage int           `mapstructure:"default_per_page"`
}

type SwaggerConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	AllowedIPs []string `mapstructure:"allowed_ips"`
}

// TelemetryConfig holds OpenTelemetry and Pyroscope settings. Enabled gates
// traces, metrics and logs; profiling is independent.
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"`
	LogsEnabled       bool          `mapstructure:"logs_enabled"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"`
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
	ProfilingEnabled  bool          `mapstructure:"profiling_enabled"`
	ProfilingServer   string        `mapstructure:"profiling_server"`
}

// defaults registers every key, so AutomaticEnv can override keys missing
// from config.toml. Empty values mean "not set".
var defaults = map[string]any{
	"app.name": "quotations-backend",
	"app.env":  "development",
	"app.port": "8080",

	"database.url":                "",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "quotations",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":     "",
	"jwt.expiration": 24 * time.Hour,
	"jwt.issuer":     "quotations-backend",

	"cookie.name":      "session",
	"cookie.domain":    "",
	"cookie.path":      "/",
	"cookie.secure":    false,
	"cookie.same_site": "lax",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout": 15 * time.Second,
	// PDF rendering can take up to a minute
	"http.write_timeout":            90 * time.Second,
	"http.idle_timeout":             60 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            int64(2 << 20),
	"http.rate_limit_enabled":       false,
	"http.rate_limit_requests":      100,
	"http.rate_limit_window":        time.Minute,
	"http.auth_rate_limit_enabled":  true,
	"http.auth_rate_limit_requests": 5,
	"http.auth_rate_limit_window":   time.Minute,
	// no default origins: an empty list rejects cross-origin requests
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"storage.enabled":            false,
	"storage.endpoint":           "",
	"storage.region":             "us-east-1",
	"storage.bucket":             "product-images",
	"storage.access_key":         "",
	"storage.secret_key":         "",
	"storage.use_ssl":            false,
	"storage.use_path_style":     true,
	"storage.presign_expiration": 15 * time.Minute,
	"storage.public_base_url":    "",

	"pdf.chrome_remote_url": "",
	"pdf.no_sandbox":        false,
	"pdf.render_timeout":    60 * time.Second,
	"pdf.nav_timeout":       30 * time.Second,
	"pdf.logo_path":         "",

	"dashboard.cache_ttl":        5 * time.Minute,
	"dashboard.latest_limit":     5,
	"dashboard.revenue_months":   12,
	"dashboard.default_per_page": 6,

	"swagger.enabled":     false,
	"swagger.allowed_ips": []string{},

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "",
	"telemetry.insecure":                false,
	"telemetry.logs_enabled":            false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.metrics_enabled":         false,
	"telemetry.metrics_interval":        time.Minute,
	"telemetry.profiling_enabled":       false,
	"telemetry.profiling_server":        "http://localhost:4040",
}

// Load reads the configuration. Priority, highest first:
//  1. QUOTES_ environment variables (QUOTES_DATABASE_PASSWORD)
//  2. a .env file in the working directory, which never overrides the environment
//  3. config.toml in . or /app
//  4. defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		errs = append(errs, errors.New("database.max_open_conns must be positive"))
	case db.MaxIdleConns < 0:
		errs = append(errs, errors.New("database.max_idle_conns cannot be negative"))
	case db.MaxIdleConns > db.MaxOpenConns:
		errs = append(errs, fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			db.MaxIdleConns, db.MaxOpenConns))
	}
	if db.URL != "" {
		if _, err := url.Parse(db.URL); err != nil {
			errs = append(errs, fmt.Errorf("database.url is not a valid URL: %w", err))
		}
	}
	if c.Dashboard.DefaultPerPage < 1 || c.Dashboard.DefaultPerPage > 100 {
		errs = append(errs, errors.New("dashboard.default_per_page must be between 1 and 100"))
	}
	if c.Storage.Enabled && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		errs = append(errs, errors.New("storage.access_key and storage.secret_key are required when storage is enabled"))
	}
	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", r))
	}

	if c.IsProduction() {
		errs = append(errs, c.productionErrors()...)
	} else if c.JWT.Secret == "" {
		c.JWT.Secret = developmentJWTSecret
	}
	return errors.Join(errs...)
}

// productionErrors lists settings that are only unsafe in production
func (c *Config) productionErrors() []error {
	var errs []error
	switch {
	case c.JWT.Secret == "":
		errs = append(errs, errors.New("jwt.secret is required in production"))
	case len(c.JWT.Secret) < 32:
		errs = append(errs, errors.New("jwt.secret must be at least 32 characters in production"))
	}
	if c.Database.URL == "" {
		if c.Database.Password == "" {
			errs = append(errs, errors.New("database.password is required in production"))
		}
		if c.Database.SSLMode == "disable" {
			errs = append(errs, errors.New("database.sslmode cannot be 'disable' in production"))
		}
	}
	if !c.Cookie.Secure {
		errs = append(errs, errors.New("cookie.secure must be true in production"))
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			errs = append(errs, errors.New("http.cors_allow_origins cannot be '*' in production"))
			break
		}
	}
	if c.Swagger.Enabled && len(c.Swagger.AllowedIPs) == 0 {
		errs = append(errs, errors.New("swagger endpoint must be disabled or IP restricted in production"))
	}
	if c.Telemetry.DBLogFullSQL {
		errs = append(errs, errors.New("telemetry.db_log_full_sql must be false in production"))
	}
	return errs
}

// IsProduction reports whether the app runs with env=production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the connection URL with user and password escaped
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
