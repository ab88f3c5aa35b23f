package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-checkout/pkg/session"
)

// EnvPrefix prefixes every environment override, e.g. CHECKOUT_SESSION_URL.
const EnvPrefix = "CHECKOUT"

// Config is the CLI configuration read from checkout.yaml and the
// environment.
type Config struct {
	Session   SessionConfig   `mapstructure:"session"`
	Transport TransportConfig `mapstructure:"transport"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Server    ServerConfig    `mapstructure:"server"`
}

// SessionConfig controls the session pipeline.
type SessionConfig struct {
	URL                    string   `mapstructure:"url"`
	SupportedNetworks      []string `mapstructure:"supportedNetworks"`
	SharedLocalizationFile string   `mapstructure:"sharedLocalizationFile"`
	LoadLogos              bool     `mapstructure:"loadLogos"`
}

// TransportConfig controls outgoing requests.
type TransportConfig struct {
	Timeout   time.Duration     `mapstructure:"timeout"`
	UserAgent string            `mapstructure:"userAgent"`
	Headers   map[string]string `mapstructure:"headers"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig controls the fixture server started by `serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Gzip bool   `mapstructure:"gzip"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			SupportedNetworks:      append([]string(nil), session.SupportedNetworks...),
			SharedLocalizationFile: session.DefaultSharedLocalizationFile,
		},
		Transport: TransportConfig{
			Timeout:   15 * time.Second,
			UserAgent: "go-checkout",
			Headers:   map[string]string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8089",
		},
	}
}

// Load reads path, or checkout.yaml from the working directory when path is
// empty. A missing default file is not an error; a missing explicit file is.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("checkout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Transport.Headers == nil {
		cfg.Transport.Headers = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("session.url", cfg.Session.URL)
	v.SetDefault("session.supportedNetworks", cfg.Session.SupportedNetworks)
	v.SetDefault("session.sharedLocalizationFile", cfg.Session.SharedLocalizationFile)
	v.SetDefault("session.loadLogos", cfg.Session.LoadLogos)
	v.SetDefault("transport.timeout", cfg.Transport.Timeout)
	v.SetDefault("transport.userAgent", cfg.Transport.UserAgent)
	v.SetDefault("transport.headers", cfg.Transport.Headers)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.gzip", cfg.Server.Gzip)
}

// Validate checks values that viper cannot type check.
func (c *Config) Validate() error {
	if c.Transport.Timeout < 0 {
		return &Error{Field: "transport.timeout", Message: "must not be negative"}
	}
	if len(c.Session.SupportedNetworks) == 0 {
		return &Error{Field: "session.supportedNetworks", Message: "at least one network is required"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return &Error{Field: "logging.format", Message: "must be text or json"}
	}
	return nil
}

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
