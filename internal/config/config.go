// Package config loads JobWave settings from an optional .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "JOBWAVE"

// Config holds all application configuration.
type Config struct {
	Port           int           `mapstructure:"port"`             // JOBWAVE_PORT
	DatabaseURL    string        `mapstructure:"database_url"`     // JOBWAVE_DATABASE_URL or DATABASE_URL
	LogLevel       string        `mapstructure:"log_level"`        // JOBWAVE_LOG_LEVEL
	Debug          bool          `mapstructure:"debug"`            // JOBWAVE_DEBUG
	SessionTTL     time.Duration `mapstructure:"session_ttl"`      // JOBWAVE_SESSION_TTL
	UploadDir      string        `mapstructure:"upload_dir"`       // JOBWAVE_UPLOAD_DIR
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"` // JOBWAVE_MAX_UPLOAD_BYTES
	AllowedOrigins []string      `mapstructure:"allowed_origins"`  // JOBWAVE_ALLOWED_ORIGINS, comma separated
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`   // GEMINI_API_KEY
	GeminiModel    string        `mapstructure:"gemini_model"`     // JOBWAVE_GEMINI_MODEL
	LoginRate      int           `mapstructure:"login_rate"`       // JOBWAVE_LOGIN_RATE, attempts per minute per IP
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
	v.SetDefault("session_ttl", 168*time.Hour)
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("max_upload_bytes", 5<<20)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("login_rate", 5)
}

// Load reads the .env file (when present) and the environment. Flags that
// were set explicitly on the command line win over both; flags may be nil.
func Load(envFile string, flags *pflag.FlagSet) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("database_url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if f.Changed {
				_ = v.BindPFlag(key, f)
			}
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %v", c.SessionTTL)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadBytes)
	}
	if c.LoginRate <= 0 {
		return fmt.Errorf("login rate must be positive, got %d", c.LoginRate)
	}
	return nil
}

// DemoMode reports whether no database is configured.
func (c *Config) DemoMode() bool {
	return c.DatabaseURL == ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// String returns a redacted string representation of the config.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Config{\n")
	fmt.Fprintf(&sb, "  Port: %d,\n", c.Port)
	fmt.Fprintf(&sb, "  DatabaseURL: %s,\n", redactDSN(c.DatabaseURL))
	fmt.Fprintf(&sb, "  LogLevel: %s,\n", c.LogLevel)
	fmt.Fprintf(&sb, "  Debug: %v,\n", c.Debug)
	fmt.Fprintf(&sb, "  SessionTTL: %v,\n", c.SessionTTL)
	fmt.Fprintf(&sb, "  UploadDir: %s,\n", c.UploadDir)
	fmt.Fprintf(&sb, "  MaxUploadBytes: %d,\n", c.MaxUploadBytes)
	fmt.Fprintf(&sb, "  AllowedOrigins: %v,\n", c.AllowedOrigins)
	fmt.Fprintf(&sb, "  GeminiAPIKey: %s,\n", redactKey(c.GeminiAPIKey))
	fmt.Fprintf(&sb, "  GeminiModel: %s,\n", c.GeminiModel)
	fmt.Fprintf(&sb, "  LoginRate: %d/min,\n", c.LoginRate)
	fmt.Fprintf(&sb, "}")
	return sb.String()
}

var dsnPassword = regexp.MustCompile(`password=\S+`)

// redactDSN masks the password of a URL or key=value Postgres DSN.
func redactDSN(dsn string) string {
	if dsn == "" {
		return "(demo mode)"
	}
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	return dsnPassword.ReplaceAllString(dsn, "password=****")
}

func redactKey(key string) string {
	if key == "" {
		return "(empty)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "***...***" + key[len(key)-3:]
}
