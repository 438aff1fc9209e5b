// Package config loads the docsite YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "docsite.yaml"

// ErrNotFound is wrapped when the configuration file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config is the complete docsite configuration.
type Config struct {
	Content  ContentConfig  `yaml:"content"`
	Manifest ManifestConfig `yaml:"manifest"`
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ContentConfig locates the content documents.
type ContentConfig struct {
	Root string `yaml:"root"`
}

// ManifestConfig controls the manifest artifact.
type ManifestConfig struct {
	// Output is the artifact path; .db/.sqlite selects the SQLite store.
	Output      string          `yaml:"output"`
	OnCollision CollisionPolicy `yaml:"on_collision"`
}

// SiteConfig controls generated links.
type SiteConfig struct {
	BasePath       string         `yaml:"base_path"`
	BreadcrumbRoot BreadcrumbRoot `yaml:"breadcrumb_root"`
}

// BreadcrumbRoot is the first entry of every breadcrumb trail. An empty Href
// means the base path.
type BreadcrumbRoot struct {
	Href  string `yaml:"href,omitempty"`
	Label string `yaml:"label"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig controls the default slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used for absent keys.
func Default() *Config {
	return &Config{
		Content:  ContentConfig{Root: "content"},
		Manifest: ManifestConfig{Output: "manifest.json", OnCollision: CollisionWarn},
		Site: SiteConfig{
			BasePath:       "/docs",
			BreadcrumbRoot: BreadcrumbRoot{Label: "Articles"},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads configPath on top of Default, after loading .env files and
// expanding ${VAR} references. The result is normalized and validated.
func Load(configPath string) (*Config, error) {
	for _, f := range loadEnvFiles() {
		slog.Debug("Loaded environment file", logfields.File(f))
	}

	// #nosec G304 - path is user-provided configuration
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithCause(fmt.Errorf("%w: %s", ErrNotFound, configPath)).
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			WithContext("path", configPath).
			UserAction().
			Build()
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when configPath does
// not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Normalize canonicalizes enumerations and paths in place.
func (c *Config) Normalize() error {
	level, err := ParseLogLevel(string(c.Logging.Level))
	if err != nil {
		return invalid("logging.level", err)
	}
	format, err := ParseLogFormat(string(c.Logging.Format))
	if err != nil {
		return invalid("logging.format", err)
	}
	policy, err := ParseCollisionPolicy(string(c.Manifest.OnCollision))
	if err != nil {
		return invalid("manifest.on_collision", err)
	}
	c.Logging.Level, c.Logging.Format, c.Manifest.OnCollision = level, format, policy

	c.Site.BasePath = strings.TrimSuffix(strings.TrimSpace(c.Site.BasePath), "/")
	c.Site.BreadcrumbRoot.Href = strings.TrimSpace(c.Site.BreadcrumbRoot.Href)
	return nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// #nosec G306 - configuration is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
