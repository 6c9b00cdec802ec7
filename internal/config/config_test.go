package config

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadRequiresAPIKey(t *testing.T) {
	for _, args := range [][]string{nil, {}, {""}} {
		if _, err := Load(newFlags(t), args); !errors.Is(err, ErrMissingAPIKey) {
			t.Fatalf("args %q: expected ErrMissingAPIKey, got %v", args, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t), []string{"key"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "key" {
		t.Fatalf("api key %q", cfg.APIKey)
	}
	if cfg.LongURL != DefaultLongURL {
		t.Fatalf("long url %q", cfg.LongURL)
	}
	if cfg.EndpointScheme != DefaultEndpointScheme || cfg.EndpointHost != DefaultEndpointHost ||
		cfg.EndpointPort != DefaultEndpointPort || cfg.EndpointPath != DefaultEndpointPath {
		t.Fatalf("unexpected endpoint %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level %q", cfg.LogLevel)
	}
}

func TestLoadWithoutFlagSetUsesDefaults(t *testing.T) {
	cfg, err := Load(nil, []string{"key", ""})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EndpointHost != DefaultEndpointHost || cfg.LongURL != DefaultLongURL {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadHonoursFlags(t *testing.T) {
	fs := newFlags(t,
		"--endpoint-scheme", "HTTP",
		"--endpoint-host", "127.0.0.1",
		"--endpoint-port", "8080",
		"--endpoint-path", "v4/shorten",
		"--log-level", "debug",
	)
	cfg, err := Load(fs, []string{"key", "https://example.com/page?param=value"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EndpointScheme != "http" || cfg.EndpointHost != "127.0.0.1" ||
		cfg.EndpointPort != 8080 || cfg.EndpointPath != "/v4/shorten" {
		t.Fatalf("unexpected endpoint %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level %q", cfg.LogLevel)
	}
	if cfg.LongURL != "https://example.com/page?param=value" {
		t.Fatalf("long url %q", cfg.LongURL)
	}
}

func TestLoadRejectsInvalidEndpoint(t *testing.T) {
	cases := [][]string{
		{"--endpoint-scheme", "ftp"},
		{"--endpoint-host", " "},
		{"--endpoint-port", "0"},
		{"--endpoint-port", "70000"},
	}
	for _, flags := range cases {
		if _, err := Load(newFlags(t, flags...), []string{"key"}); err == nil {
			t.Fatalf("flags %q: expected error", flags)
		}
	}
}
