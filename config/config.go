// Package config loads chainview's startup configuration from YAML,
// layered over a plain-struct set of defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"
)

// PageSize bounds `:limit` sanitization for the route handler.
type PageSize struct {
	Min     uint64 `yaml:"min"`
	Max     uint64 `yaml:"max"`
	Default uint64 `yaml:"default"`
}

// CountRange is the timeline engine's alias of PageSize; Preset is the
// value substituted into a limit-canonicalization redirect.
type CountRange struct {
	Min    uint64 `yaml:"min"`
	Max    uint64 `yaml:"max"`
	Preset uint64 `yaml:"preset"`
}

// StoreConfig describes the document-store collaborator endpoint and the
// pool's operating envelope.
type StoreConfig struct {
	Endpoint        string            `yaml:"endpoint"`
	MaxConcurrent   int64             `yaml:"maxConcurrent"`
	ConnectTimeout  time.Duration     `yaml:"connectTimeout"`
	RequestTimeout  time.Duration     `yaml:"requestTimeout"`
	MaxResponseSize datasize.ByteSize `yaml:"maxResponseSize"`
	AliasCacheSize  int               `yaml:"aliasCacheSize"`
	AliasCacheTTL   time.Duration     `yaml:"aliasCacheTTL"`
}

// RateLimit configures the token-bucket limiter guarding route handlers.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// Config is chainview's full startup configuration.
type Config struct {
	ListenAddr string      `yaml:"listenAddr"`
	NetworkID  byte        `yaml:"networkId"`
	PageSize   PageSize    `yaml:"pageSize"`
	CountRange CountRange  `yaml:"countRange"`
	Store      StoreConfig `yaml:"store"`
	RateLimit  RateLimit   `yaml:"rateLimit"`
	LogPath    string      `yaml:"logPath"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		NetworkID:  0x68, // NEM/Symbol mainnet convention; overridden per deployment
		PageSize:   PageSize{Min: 1, Max: 100, Default: 25},
		CountRange: CountRange{Min: 1, Max: 100, Preset: 25},
		Store: StoreConfig{
			MaxConcurrent:   32,
			ConnectTimeout:  5 * time.Second,
			RequestTimeout:  10 * time.Second,
			MaxResponseSize: 8 * datasize.MB,
			AliasCacheSize:  64,
			AliasCacheTTL:   30 * time.Second,
		},
		RateLimit: RateLimit{RequestsPerSecond: 50, Burst: 100},
	}
}

// Load reads and parses a YAML config file at path, applying it over
// Default() so an omitted field keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
