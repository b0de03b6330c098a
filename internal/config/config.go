// Package config provides configuration management for wpsc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/wpsc/pkg/shortcode"
)

// Config holds the wpsc configuration: per-tag overrides and conversion settings.
type Config struct {
	Prefix         string            `yaml:"prefix,omitempty"`
	SelfClosing    []string          `yaml:"self_closing,omitempty"`
	Renames        map[string]string `yaml:"renames,omitempty"`
	Tags           []string          `yaml:"tags,omitempty"`
	EmptySelfClose bool              `yaml:"empty_self_close,omitempty"`
	Substitution   string            `yaml:"substitution,omitempty"`
	Encoding       string            `yaml:"encoding,omitempty"`
}

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9]*[-:]$`)

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Prefix != "" && !prefixPattern.MatchString(c.Prefix) {
		return fmt.Errorf("prefix %q must be lowercase letters or digits ending in '-' or ':'", c.Prefix)
	}

	if c.Substitution != "" && !slices.Contains(shortcode.ValidSubstitutionModes(), c.Substitution) {
		return fmt.Errorf("substitution must be one of %s", strings.Join(shortcode.ValidSubstitutionModes(), ", "))
	}

	if c.Encoding != "" {
		if _, err := shortcode.LookupEncoding(c.Encoding); err != nil {
			return fmt.Errorf("unknown encoding %q", c.Encoding)
		}
	}

	for from, to := range c.Renames {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return errors.New("renames must map a tag name to a component name")
		}
	}

	return nil
}

// ParserOptions converts the configuration into shortcode parser options.
// Validate should be called first; an unknown encoding is ignored here.
func (c *Config) ParserOptions() []shortcode.Option {
	opts := []shortcode.Option{
		shortcode.WithSelfClosing(c.SelfClosing...),
		shortcode.WithRenames(c.Renames),
		shortcode.WithAllowedTags(c.Tags...),
		shortcode.WithEmptySelfClose(c.EmptySelfClose),
		shortcode.WithSubstitution(shortcode.SubstitutionMode(c.Substitution)),
	}
	if c.Prefix != "" {
		opts = append(opts, shortcode.WithPrefix(c.Prefix))
	}
	if c.Encoding != "" {
		if enc, err := shortcode.LookupEncoding(c.Encoding); err == nil {
			opts = append(opts, shortcode.WithFallbackEncoding(enc))
		}
	}
	return opts
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if prefix := os.Getenv("WPSC_PREFIX"); prefix != "" {
		c.Prefix = prefix
	}
	if tags := os.Getenv("WPSC_SELF_CLOSING"); tags != "" {
		c.SelfClosing = SplitList(tags)
	}
	if mode := os.Getenv("WPSC_SUBSTITUTION"); mode != "" {
		c.Substitution = mode
	}
	if enc := os.Getenv("WPSC_ENCODING"); enc != "" {
		c.Encoding = enc
	}
}

// EnvVars lists the environment variables read by LoadFromEnv.
func EnvVars() []string {
	return []string{"WPSC_PREFIX", "WPSC_SELF_CLOSING", "WPSC_SUBSTITUTION", "WPSC_ENCODING"}
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wpsc", "config.yml")
	}

	// Fall back to ~/.config/wpsc/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wpsc", "config.yml")
	}

	return filepath.Join(home, ".config", "wpsc", "config.yml")
}

// ResolvePath returns path when set, otherwise DefaultConfigPath.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; a malformed one is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
