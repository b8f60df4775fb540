package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rubiojr/apodview/pkg/facts"
	"github.com/rubiojr/apodview/pkg/source"
)

//go:embed config.toml.sample
var configTemplate string

// Defaults for the web surface.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
)

type Config struct {
	Source  SourceConfig  `toml:"source"`
	Web     WebConfig     `toml:"web"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

type SourceConfig struct {
	URL       string   `toml:"url"`
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

type WebConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DisplayConfig struct {
	// Locale selects the date format, e.g. "en-US" or "de".
	Locale       string   `toml:"locale"`
	FactInterval Duration `toml:"fact_interval"`
	// Facts replaces the built-in fact list when non-empty.
	Facts []string `toml:"facts,omitempty"`
}

type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	Debug      bool   `toml:"debug"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Source.URL == "" {
		c.Source.URL = source.DefaultURL
	}
	if c.Source.Timeout.Duration <= 0 {
		c.Source.Timeout = Duration{source.DefaultTimeout}
	}
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = source.DefaultUserAgent
	}
	if c.Web.Host == "" {
		c.Web.Host = DefaultHost
	}
	if c.Web.Port == 0 {
		c.Web.Port = DefaultPort
	}
	if c.Display.Locale == "" {
		c.Display.Locale = "en-US"
	}
	if c.Display.FactInterval.Duration <= 0 {
		c.Display.FactInterval = Duration{facts.DefaultInterval}
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = DefaultMaxBackups
	}
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	sc := c.SourceConfig()
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("invalid [source] section: %w", err)
	}
	return nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SourceConfig converts the [source] section.
func (c *Config) SourceConfig() source.Config {
	return source.Config{
		URL:       c.Source.URL,
		Timeout:   c.Source.Timeout.Duration,
		UserAgent: c.Source.UserAgent,
	}
}

// FactList returns the configured facts or the built-in list.
func (c *Config) FactList() []string {
	if len(c.Display.Facts) > 0 {
		return c.Display.Facts
	}
	return facts.DefaultFacts
}

// Addr is the web listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented configuration template.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// Template returns the commented configuration template.
func Template() string {
	return configTemplate
}

// GetConfigDir returns the configuration directory for apodview
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "apodview"), nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
