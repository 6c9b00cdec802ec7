package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultLongURL is shortened when no URL argument is supplied.
const DefaultLongURL = "https://example.com/test"

// Defaults for the public Bitly v4 shorten endpoint.
const (
	DefaultEndpointScheme = "https"
	DefaultEndpointHost   = "api-ssl.bitly.com"
	DefaultEndpointPort   = 443
	DefaultEndpointPath   = "/v4/shorten"
	DefaultLogLevel       = "warn"
)

// ErrMissingAPIKey is returned by Load when the API key argument is absent.
var ErrMissingAPIKey = errors.New("api key is required")

// Config holds the application configuration loaded from flags and positional arguments.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	LogLevel       string `mapstructure:"log-level"`
	EndpointScheme string `mapstructure:"endpoint-scheme"`
	EndpointHost   string `mapstructure:"endpoint-host"`
	EndpointPort   int    `mapstructure:"endpoint-port"`
	EndpointPath   string `mapstructure:"endpoint-path"`

	APIKey  string `mapstructure:"-" json:"-"`
	LongURL string `mapstructure:"-" json:"long_url"`
}

// RegisterFlags declares the command line flags Load understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("endpoint-scheme", DefaultEndpointScheme, "scheme of the shorten endpoint")
	fs.String("endpoint-host", DefaultEndpointHost, "host of the shorten endpoint")
	fs.Int("endpoint-port", DefaultEndpointPort, "port of the shorten endpoint")
	fs.String("endpoint-path", DefaultEndpointPath, "path of the shorten endpoint")
}

// Load reads configuration from the given flag set and positional arguments.
// args[0] is the API key and args[1], if present, the URL to shorten.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app_name", "bitly-probe")
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("endpoint-scheme", DefaultEndpointScheme)
	v.SetDefault("endpoint-host", DefaultEndpointHost)
	v.SetDefault("endpoint-port", DefaultEndpointPort)
	v.SetDefault("endpoint-path", DefaultEndpointPath)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(args) == 0 || args[0] == "" {
		return nil, ErrMissingAPIKey
	}
	cfg.APIKey = args[0]
	cfg.LongURL = DefaultLongURL
	if len(args) > 1 && args[1] != "" {
		cfg.LongURL = args[1]
	}

	cfg.EndpointScheme = strings.ToLower(strings.TrimSpace(cfg.EndpointScheme))
	if cfg.EndpointScheme != "http" && cfg.EndpointScheme != "https" {
		return nil, fmt.Errorf("invalid endpoint-scheme %q (must be http or https)", cfg.EndpointScheme)
	}
	if strings.TrimSpace(cfg.EndpointHost) == "" {
		return nil, fmt.Errorf("invalid endpoint-host (must not be empty)")
	}
	if cfg.EndpointPort <= 0 || cfg.EndpointPort > 65535 {
		return nil, fmt.Errorf("invalid endpoint-port %d (must be 1-65535)", cfg.EndpointPort)
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}

	return &cfg, nil
}
