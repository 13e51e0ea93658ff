package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at the config file
const EnvConfigPath = "MRW_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general" yaml:"general"`
	Server      ServerConfig      `toml:"server" yaml:"server"`
	History     HistoryConfig     `toml:"history" yaml:"history"`
	Calculators CalculatorsConfig `toml:"calculators" yaml:"calculators"`

	// Path is the file the configuration was loaded from, empty for defaults
	Path string `toml:"-" yaml:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment" validate:"oneof=development staging production test"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	LogLevel    string `toml:"log_level" yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat   string `toml:"log_format" yaml:"log_format" validate:"oneof=json text"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxRequestSize int64    `toml:"max_request_size" yaml:"max_request_size" validate:"gt=0"`
	RateLimit      float64  `toml:"rate_limit" yaml:"rate_limit" validate:"gte=0"`
	Burst          int      `toml:"burst" yaml:"burst" validate:"gte=0"`
}

// HistoryConfig holds the calculation journal settings
type HistoryConfig struct {
	Enabled       bool   `toml:"enabled" yaml:"enabled"`
	Path          string `toml:"path" yaml:"path"`
	RetentionDays int    `toml:"retention_days" yaml:"retention_days" validate:"gte=0"`
}

// CalculatorsConfig holds defaults for calculator inputs
type CalculatorsConfig struct {
	DefaultCycleLength int    `toml:"default_cycle_length" yaml:"default_cycle_length" validate:"min=21,max=35"`
	DefaultDogMethod   string `toml:"default_dog_method" yaml:"default_dog_method" validate:"oneof=logarithmic traditional"`
	DefaultCountry     string `toml:"default_country" yaml:"default_country"`
	Currency           string `toml:"currency" yaml:"currency"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{
		History: HistoryConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mrwerror.New(fmt.Sprintf("config file not found: %s", path)).
				WithCode(mrwerror.CodeConfigError).
				WithDetail("path", path)
		}
		return nil, mrwerror.Wrap(err, "failed to read config").WithCode(mrwerror.CodeConfigError)
	}

	// Start from the defaults so that omitted keys keep their default value
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, mrwerror.Wrap(err, "failed to parse config").
			WithCode(mrwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	cfg.Path = path
	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the MRW_CONFIG environment variable,
// then from the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// DefaultPaths lists the locations searched when MRW_CONFIG is not set
func DefaultPaths() []string {
	return []string{
		"./configs/config.toml",
		"./configs/config.yaml",
		"./config.toml",
		filepath.Join(os.Getenv("HOME"), ".config/meinrechenwerk/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinRECHENWERK"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Server
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.MaxRequestSize == 0 {
		c.Server.MaxRequestSize = 1 << 20
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 50
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = 100
	}

	// History
	if c.History.RetentionDays == 0 {
		c.History.RetentionDays = 90
	}

	// Calculators
	if c.Calculators.DefaultCycleLength == 0 {
		c.Calculators.DefaultCycleLength = 28
	}
	if c.Calculators.DefaultDogMethod == "" {
		c.Calculators.DefaultDogMethod = "logarithmic"
	}
	if c.Calculators.DefaultCountry == "" {
		c.Calculators.DefaultCountry = "DE"
	}
	if c.Calculators.Currency == "" {
		c.Calculators.Currency = "EUR"
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks the configuration against its field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return mrwerror.Wrap(err, "invalid configuration").WithCode(mrwerror.CodeInvalidConfig)
	}
	return nil
}

// ServerAddress returns host:port of the HTTP server
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HistoryPath returns the journal database file
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.General.DataDir, "history.db")
}

// Retention returns the journal retention period, zero for unlimited
func (c *Config) Retention() time.Duration {
	return time.Duration(c.History.RetentionDays) * 24 * time.Hour
}
