package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	JWT        JWTConfig        `yaml:"jwt"`
	Log        LogConfig        `yaml:"log"`
	Latency    LatencyConfig    `yaml:"latency"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Session    SessionConfig    `yaml:"session"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC listener settings
type ServerConfig struct {
	Host     string `yaml:"host" env:"SERVER_HOST,overwrite"`
	Port     int    `yaml:"port" env:"SERVER_PORT,overwrite"`
	GRPCPort int    `yaml:"grpc_port" env:"GRPC_PORT,overwrite"`
}

// JWTConfig contains session token settings
type JWTConfig struct {
	Secret      string        `yaml:"secret" env:"JWT_SECRET,overwrite"`
	TokenExpiry time.Duration `yaml:"token_expiry" env:"JWT_TOKEN_EXPIRY,overwrite"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL,overwrite"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" env:"LOG_FORMAT,overwrite"` // "json" or "text"
}

// LatencyConfig holds the simulated delays of every timed step.
type LatencyConfig struct {
	Login              time.Duration `yaml:"login"`
	Register           time.Duration `yaml:"register"`
	ProfileSave        time.Duration `yaml:"profile_save"`
	PasswordUpdate     time.Duration `yaml:"password_update"`
	CheckoutProcessing time.Duration `yaml:"checkout_processing"`
	CheckoutConfirm    time.Duration `yaml:"checkout_confirm"`
	GatewaySecurity    time.Duration `yaml:"gateway_security"`
	GatewayHandshake   time.Duration `yaml:"gateway_handshake"`
	GatewayConfirm     time.Duration `yaml:"gateway_confirm"`
}

// EnrichmentConfig contains generative text settings
type EnrichmentConfig struct {
	APIKey     string        `yaml:"api_key" env:"GEMINI_API_KEY,overwrite"`
	Model      string        `yaml:"model" env:"GEMINI_MODEL,overwrite"`
	Endpoint   string        `yaml:"endpoint" env:"GEMINI_ENDPOINT,overwrite"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// SessionConfig controls session housekeeping
type SessionConfig struct {
	IdleTTL time.Duration `yaml:"idle_ttl" env:"SESSION_IDLE_TTL,overwrite"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepIdleSessions       string `yaml:"sweep_idle_sessions"`
	RefreshCommunityInsight string `yaml:"refresh_community_insight"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = c.Server.Port + 1
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRPCPort)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.TokenExpiry == 0 {
		c.JWT.TokenExpiry = 24 * time.Hour
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	c.Latency.applyDefaults()

	if c.Enrichment.Model == "" {
		c.Enrichment.Model = "gemini-3-flash-preview"
	}
	if c.Enrichment.Timeout == 0 {
		c.Enrichment.Timeout = 20 * time.Second
	}
	if c.Enrichment.MaxRetries == 0 {
		c.Enrichment.MaxRetries = 3
	}

	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = 2 * time.Hour
	}

	if c.Scheduler.SweepIdleSessions == "" {
		c.Scheduler.SweepIdleSessions = "0 */10 * * * *" // every 10 minutes
	}
	if c.Scheduler.RefreshCommunityInsight == "" {
		c.Scheduler.RefreshCommunityInsight = "0 0 * * * *" // hourly
	}

	return nil
}

// applyDefaults fills zero delays with the stock timings. Negative values
// disable a delay, which tests and local demos use.
func (l *LatencyConfig) applyDefaults() {
	set := func(d *time.Duration, def time.Duration) {
		switch {
		case *d == 0:
			*d = def
		case *d < 0:
			*d = 0
		}
	}
	set(&l.Login, 1500*time.Millisecond)
	set(&l.Register, 2000*time.Millisecond)
	set(&l.ProfileSave, 1000*time.Millisecond)
	set(&l.PasswordUpdate, 1500*time.Millisecond)
	set(&l.CheckoutProcessing, 2000*time.Millisecond)
	set(&l.CheckoutConfirm, 1500*time.Millisecond)
	set(&l.GatewaySecurity, 1500*time.Millisecond)
	set(&l.GatewayHandshake, 2500*time.Millisecond)
	set(&l.GatewayConfirm, 1500*time.Millisecond)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC health server address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}
