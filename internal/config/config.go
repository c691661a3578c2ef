package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	StoreBackend string
	DatabaseURL  string
	SQLitePath   string

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	OpenAITimeoutSecs int

	Port                   int
	WebhookSecret          string
	APIToken               string
	WebhookRateLimitPerMin int
	WebhookMaxBodyBytes    int64
	CORSAllowedOrigins     []string

	LogLevel  string
	LogFormat string

	OTelEnabled  bool
	OTelEndpoint string

	JournalTimezone string

	DashboardSSHAddr        string
	DashboardSSHHostKey     string
	DashboardAuthorizedKeys string
	DashboardLogFile        string

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int

	// Warnings collects values that were ignored in favour of a default.
	// They are logged once the logger exists.
	Warnings []string
}

func defaults(v *viper.Viper) {
	v.SetDefault("SUPABASE_BUCKET", "screenshots")
	v.SetDefault("STORE_BACKEND", BackendSupabase)
	v.SetDefault("SQLITE_PATH", "trademind.db")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_TIMEOUT_SECS", 30)
	v.SetDefault("PORT", 5001)
	v.SetDefault("WEBHOOK_RATE_LIMIT_PER_MIN", 120)
	v.SetDefault("WEBHOOK_MAX_BODY_BYTES", 10<<20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("JOURNAL_TIMEZONE", "Local")
	v.SetDefault("DASHBOARD_SSH_ADDR", ":23234")
	v.SetDefault("DASHBOARD_SSH_HOST_KEY", ".ssh/trademind_ed25519")
	v.SetDefault("DASHBOARD_LOG_FILE", "trademind-dashboard.log")
	v.SetDefault("MCP_TRANSPORT", "stdio")
	v.SetDefault("MCP_HTTP_BIND", "127.0.0.1")
	v.SetDefault("MCP_HTTP_PORT", 8090)
	v.SetDefault("MCP_REQUEST_TIMEOUT_SECS", 10)
	v.SetDefault("MCP_RATE_LIMIT_PER_MIN", 60)
}

// Load reads configuration from the process environment. A .env file, if
// any, must already have been loaded into the environment.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	cfg := &Config{
		SupabaseURL:             strings.TrimRight(str(v, "SUPABASE_URL"), "/"),
		SupabaseKey:             str(v, "SUPABASE_KEY"),
		SupabaseBucket:          str(v, "SUPABASE_BUCKET"),
		StoreBackend:            strings.ToLower(str(v, "STORE_BACKEND")),
		DatabaseURL:             str(v, "DATABASE_URL"),
		SQLitePath:              str(v, "SQLITE_PATH"),
		OpenAIAPIKey:            str(v, "OPENAI_API_KEY"),
		OpenAIModel:             str(v, "OPENAI_MODEL"),
		OpenAIBaseURL:           str(v, "OPENAI_BASE_URL"),
		WebhookSecret:           str(v, "WEBHOOK_SECRET"),
		APIToken:                str(v, "API_TOKEN"),
		LogLevel:                strings.ToLower(str(v, "LOG_LEVEL")),
		LogFormat:               strings.ToLower(str(v, "LOG_FORMAT")),
		OTelEnabled:             v.GetBool("OTEL_ENABLED"),
		OTelEndpoint:            str(v, "OTEL_EXPORTER_OTLP_ENDPOINT"),
		JournalTimezone:         str(v, "JOURNAL_TIMEZONE"),
		DashboardSSHAddr:        str(v, "DASHBOARD_SSH_ADDR"),
		DashboardSSHHostKey:     str(v, "DASHBOARD_SSH_HOST_KEY"),
		DashboardAuthorizedKeys: str(v, "DASHBOARD_SSH_AUTHORIZED_KEYS"),
		DashboardLogFile:        str(v, "DASHBOARD_LOG_FILE"),
		MCPTransport:            strings.ToLower(str(v, "MCP_TRANSPORT")),
		MCPHTTPBind:             str(v, "MCP_HTTP_BIND"),
		MCPAuthToken:            str(v, "MCP_AUTH_TOKEN"),
	}

	cfg.Port = cfg.positiveInt(v, "PORT")
	cfg.OpenAITimeoutSecs = cfg.positiveInt(v, "OPENAI_TIMEOUT_SECS")
	cfg.WebhookRateLimitPerMin = cfg.positiveInt(v, "WEBHOOK_RATE_LIMIT_PER_MIN")
	cfg.WebhookMaxBodyBytes = int64(cfg.positiveInt(v, "WEBHOOK_MAX_BODY_BYTES"))
	cfg.MCPHTTPPort = cfg.positiveInt(v, "MCP_HTTP_PORT")
	cfg.MCPRequestTimeoutSecs = cfg.positiveInt(v, "MCP_REQUEST_TIMEOUT_SECS")
	cfg.MCPRateLimitPerMin = cfg.positiveInt(v, "MCP_RATE_LIMIT_PER_MIN")

	for _, origin := range strings.Split(str(v, "CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		cfg.warnf("unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		cfg.warnf("unsupported LOG_FORMAT=%q, defaulting to json", cfg.LogFormat)
		cfg.LogFormat = "json"
	}
	if cfg.WebhookSecret == "" {
		cfg.warnf("WEBHOOK_SECRET not set, webhooks accept unauthenticated requests")
		if cfg.APIToken == "" {
			cfg.warnf("API_TOKEN not set, /api routes accept unauthenticated requests")
		}
	}

	return cfg
}

// Validate reports missing or inconsistent required settings. It is called
// once at startup so that no request ever fails for configuration reasons.
func (c *Config) Validate() error {
	var errs []error
	if c.SupabaseURL == "" {
		errs = append(errs, errors.New("SUPABASE_URL is required"))
	}
	if c.SupabaseKey == "" {
		errs = append(errs, errors.New("SUPABASE_KEY is required"))
	}
	if c.OpenAIAPIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is required"))
	}
	switch c.StoreBackend {
	case BackendSupabase, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_BACKEND %q", c.StoreBackend))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("JOURNAL_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Location resolves JOURNAL_TIMEZONE, used to bucket trades by calendar day.
func (c *Config) Location() (*time.Location, error) {
	if c.JournalTimezone == "" || strings.EqualFold(c.JournalTimezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.JournalTimezone)
}

func (c *Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAITimeoutSecs) * time.Second
}

func (c *Config) positiveInt(v *viper.Viper, key string) int {
	n := v.GetInt(key)
	if n > 0 {
		return n
	}
	def := viper.New()
	defaults(def)
	fallback := def.GetInt(key)
	if raw := str(v, key); raw != "" {
		c.warnf("invalid %s=%q, defaulting to %d", key, raw, fallback)
	}
	return fallback
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func str(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
