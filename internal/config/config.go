package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML schema. Every value can also be supplied (and
// overridden) through the environment; see Resolver.
type Config struct {
	Version int     `yaml:"version"`
	Sheet   Sheet   `yaml:"sheet"`
	Network Network `yaml:"network"`
	Images  Images  `yaml:"images"`
	Logging Logging `yaml:"logging"`
}

type Sheet struct {
	APIURL string `yaml:"api_url"`
}

type Network struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type Images struct {
	// Dir is probed for conventionally named assets when no explicit
	// path is configured. Defaults to "assets".
	Dir     string `yaml:"dir"`
	Header  string `yaml:"header"`
	Sidebar string `yaml:"sidebar"`
	Footer  string `yaml:"footer"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // human|json
}

const defaultTimeoutSeconds = 15

// DefaultPath returns the first existing config file among
// $GRIEVLOG_CONFIG, ./config.yml and ~/.config/grievlog/config.yml,
// or "" when none exists. A missing config file is not an error.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv("GRIEVLOG_CONFIG")); p != "" {
		return p
	}
	candidates := []string{"config.yml"}
	if h, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(h, ".config", "grievlog", "config.yml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Load reads, parses, expands, and validates a YAML config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	expanded, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	// Expand ${ENV} placeholders before unmarshalling
	b = []byte(os.ExpandEnv(string(b)))
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.expandPaths(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDefault loads DefaultPath(), or returns an empty Config when no
// file exists anywhere on the search path.
func LoadDefault() (*Config, error) {
	p := DefaultPath()
	if p == "" {
		return &Config{Version: 1}, nil
	}
	return Load(p)
}

func (c *Config) expandPaths() error {
	var err error
	if c.Images.Dir, err = expandTilde(c.Images.Dir); err != nil {
		return err
	}
	if c.Images.Header, err = expandTilde(c.Images.Header); err != nil {
		return err
	}
	if c.Images.Sidebar, err = expandTilde(c.Images.Sidebar); err != nil {
		return err
	}
	if c.Images.Footer, err = expandTilde(c.Images.Footer); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if c.Network.TimeoutSeconds < 0 {
		return errors.New("network.timeout_seconds must be >= 0")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level invalid: %s", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "human", "json":
		// ok
	default:
		return fmt.Errorf("logging.format invalid: %s", c.Logging.Format)
	}
	return nil
}

// Timeout returns the bounded per-request timeout for sheet calls.
func (c *Config) Timeout() time.Duration {
	if c.Network.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.Network.TimeoutSeconds) * time.Second
}

func expandTilde(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p[0] != '~' {
		return p, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return h, nil
	}
	return filepath.Join(h, p[2:]), nil
}
