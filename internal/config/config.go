package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "crudql.toml"

// Schema variants.
const (
	VariantHello = "hello"
	VariantCRUD  = "crud"
)

// Log formats.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Variants lists the recognized schema variants.
var Variants = []string{VariantHello, VariantCRUD}

// LogFormats lists the recognized log formats.
var LogFormats = []string{LogFormatAuto, LogFormatConsole, LogFormatJSON}

// LogLevels lists the recognized log levels.
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// Config holds the crudql configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Schema SchemaConfig `toml:"schema"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Playground bool   `toml:"playground"`
}

// SchemaConfig selects which schema is served.
type SchemaConfig struct {
	Variant string `toml:"variant"`
}

// StoreConfig defines how the record store is initialized and updated.
type StoreConfig struct {
	Seed     bool   `toml:"seed"`
	SeedFile string `toml:"seed_file,omitempty"`

	// FalsyUpdates makes updates ignore empty names and zero ages. Turning
	// it off applies every supplied field, zero values included.
	FalsyUpdates bool `toml:"falsy_updates"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       4000,
			Playground: true,
		},
		Schema: SchemaConfig{
			Variant: VariantCRUD,
		},
		Store: StoreConfig{
			Seed:         true,
			FalsyUpdates: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatAuto,
		},
	}
}

// Load reads configuration from the given file.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	// Start from defaults so omitted keys keep their default values
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Schema.Variant == "" {
		cfg.Schema.Variant = VariantCRUD
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = LogFormatAuto
	}

	return cfg, nil
}

// Save writes the configuration to the given file.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that all values are within their allowed sets.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if !c.IsValidVariant(c.Schema.Variant) {
		return fmt.Errorf("invalid schema variant: %s (must be %s)", c.Schema.Variant, strings.Join(Variants, ", "))
	}
	if !contains(LogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log level: %s (must be %s)", c.Log.Level, strings.Join(LogLevels, ", "))
	}
	if !contains(LogFormats, c.Log.Format) {
		return fmt.Errorf("invalid log format: %s (must be %s)", c.Log.Format, strings.Join(LogFormats, ", "))
	}
	return nil
}

// IsValidVariant returns true if the variant is a known schema variant.
func (c *Config) IsValidVariant(variant string) bool {
	return contains(Variants, variant)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
