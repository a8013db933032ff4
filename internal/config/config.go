package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/tonhe/zgraph/internal/graph"
	"github.com/tonhe/zgraph/internal/resolver"
)

// Config holds the defaults applied before command line flags.
type Config struct {
	Period             int           `toml:"period"`
	Width              int           `toml:"width"`
	Height             int           `toml:"height"`
	CredentialFile     string        `toml:"credential_file"`
	CredentialSection  string        `toml:"credential_section"`
	Resolver           string        `toml:"resolver"`
	ResolverTimeout    time.Duration `toml:"-"`
	ResolverTimeoutStr string        `toml:"resolver_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Period:            graph.DefaultPeriod,
		Width:             graph.DefaultWidth,
		Height:            graph.DefaultHeight,
		CredentialFile:    DefaultCredentialFile,
		CredentialSection: DefaultCredentialSection,
		Resolver:          resolver.DefaultBinary,
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ResolverTimeoutStr != "" {
		d, err := time.ParseDuration(cfg.ResolverTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("parse %s: resolver_timeout: %w", path, err)
		}
		cfg.ResolverTimeout = d
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.ResolverTimeoutStr = ""
	if cfg.ResolverTimeout > 0 {
		cfg.ResolverTimeoutStr = cfg.ResolverTimeout.String()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}
