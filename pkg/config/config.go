// Package config loads a YAML process configuration, in the teacher's
// gopkg.in/yaml.v3 decode idiom (cmd/warren/apply.go). cmd/nebula does
// not load it; the CLI takes its settings from command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/nebula/pkg/cache"
)

// Config is the top-level process configuration for both the CLI and
// the HTTP service.
type Config struct {
	// RepositoryRoot is the local filesystem binding's root directory.
	// Empty defaults to local.DefaultRoot() (~/.nebula/).
	RepositoryRoot string `yaml:"repositoryRoot,omitempty"`

	// ListenAddr is the address the HTTP service binds when run via
	// `nebula serve`.
	ListenAddr string `yaml:"listenAddr,omitempty"`

	// RemoteURL, when set, makes the CLI talk to a remote service
	// instead of the local filesystem binding.
	RemoteURL string `yaml:"remoteURL,omitempty"`

	Log   LogConfig   `yaml:"log,omitempty"`
	Cache CacheConfig `yaml:"cache,omitempty"`

	// CredentialTTL bounds how long a derived Nebula-Credentials
	// header is expected to remain acceptable; it is informational
	// only here — the credential itself carries no expiry field, the
	// remote binding simply derives a fresh one on every call.
	CredentialTTL time.Duration `yaml:"credentialTTL,omitempty"`
}

// LogConfig mirrors pkg/log.Config's fields for YAML decoding.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

// CacheConfig overrides the §4.5 default bounded-cache capacities.
type CacheConfig struct {
	Certificates int `yaml:"certificates,omitempty"`
	Documents    int `yaml:"documents,omitempty"`
	Types        int `yaml:"types,omitempty"`
}

// Default returns the standard configuration: local repository at its
// default root, the §4.5 cache capacities, info-level console logging.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		Log:        LogConfig{Level: "info"},
		Cache: CacheConfig{
			Certificates: cache.CertificateCapacity,
			Documents:    cache.DocumentCapacity,
			Types:        cache.TypeCapacity,
		},
		CredentialTTL: 5 * time.Minute,
	}
}

// Load reads and decodes a YAML config file at path over top of
// Default(), so a partial file only overrides the fields it sets.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Caches builds a *cache.Caches honoring any capacity overrides in c.
func (c *Config) Caches() *cache.Caches {
	certs := c.Cache.Certificates
	if certs == 0 {
		certs = cache.CertificateCapacity
	}
	docs := c.Cache.Documents
	if docs == 0 {
		docs = cache.DocumentCapacity
	}
	types := c.Cache.Types
	if types == 0 {
		types = cache.TypeCapacity
	}
	return &cache.Caches{
		Certificates: cache.New("certificate", certs),
		Documents:    cache.New("document", docs),
		Types:        cache.New("type", types),
	}
}
