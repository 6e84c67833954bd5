// Package config provides configuration management for the function host.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"cart-transform/internal/errors"
	"cart-transform/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains expansion engine settings
	Engine EngineConfig `json:"engine"`

	// Metafields contains metafield store settings
	Metafields MetafieldConfig `json:"metafields"`

	// Server contains HTTP host settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EngineConfig contains expansion engine settings
type EngineConfig struct {
	// DefaultOfferPercent is the discount applied when a bundle carries
	// a zero or missing offer
	DefaultOfferPercent int `json:"default_offer_percent"`
}

// MetafieldConfig contains metafield store settings
type MetafieldConfig struct {
	// BundleNamespace is the metafield namespace holding bundle catalogs
	BundleNamespace string `json:"bundle_namespace"`

	// BundleKey is the metafield key holding bundle catalogs
	BundleKey string `json:"bundle_key"`

	// SeedFile optionally preloads the in-memory store from a JSON file
	SeedFile string `json:"seed_file,omitempty"`
}

// ServerConfig contains HTTP host settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Engine: EngineConfig{
			DefaultOfferPercent: 10,
		},
		Metafields: MetafieldConfig{
			BundleNamespace: "$app:bundles",
			BundleKey:       "function-configuration",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// hclConfig mirrors Config for HCL decoding; blocks are optional.
type hclConfig struct {
	Version    string              `hcl:"version,optional"`
	Engine     *hclEngineConfig    `hcl:"engine,block"`
	Metafields *hclMetafieldConfig `hcl:"metafields,block"`
	Server     *hclServerConfig    `hcl:"server,block"`
	Logging    *logging.Config     `hcl:"logging,block"`
}

type hclEngineConfig struct {
	DefaultOfferPercent int `hcl:"default_offer_percent,optional"`
}

type hclMetafieldConfig struct {
	BundleNamespace string `hcl:"bundle_namespace,optional"`
	BundleKey       string `hcl:"bundle_key,optional"`
	SeedFile        string `hcl:"seed_file,optional"`
}

type hclServerConfig struct {
	Addr string `hcl:"addr,optional"`
}

// Load loads configuration from a file, overlaying the defaults. Files
// ending in .hcl are decoded as HCL; everything else as JSON. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		var raw hclConfig
		if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
			return nil, errors.Config("failed to decode HCL config", err)
		}
		applyHCL(config, &raw)
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read config file", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to decode JSON config", err)
	}
	return config, nil
}

func applyHCL(config *Config, raw *hclConfig) {
	if raw.Version != "" {
		config.Version = raw.Version
	}
	if raw.Engine != nil && raw.Engine.DefaultOfferPercent != 0 {
		config.Engine.DefaultOfferPercent = raw.Engine.DefaultOfferPercent
	}
	if raw.Metafields != nil {
		if raw.Metafields.BundleNamespace != "" {
			config.Metafields.BundleNamespace = raw.Metafields.BundleNamespace
		}
		if raw.Metafields.BundleKey != "" {
			config.Metafields.BundleKey = raw.Metafields.BundleKey
		}
		if raw.Metafields.SeedFile != "" {
			config.Metafields.SeedFile = raw.Metafields.SeedFile
		}
	}
	if raw.Server != nil && raw.Server.Addr != "" {
		config.Server.Addr = raw.Server.Addr
	}
	if raw.Logging != nil {
		config.Logging = *raw.Logging
	}
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
