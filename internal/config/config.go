// Package config loads mu tool settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mu-lang/mu/internal/lexer"
)

// EnvVar names the environment variable consulted by Discover.
const EnvVar = "MU_CONFIG"

// Candidate file names searched in the working directory, in order.
var candidates = []string{"mu.toml", "mu.yaml", "mu.yml"}

// Config holds the complete tool configuration
type Config struct {
	Lexer  LexerConfig  `toml:"lexer" yaml:"lexer"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// LexerConfig holds tokenizer settings
type LexerConfig struct {
	Strict          bool `toml:"strict" yaml:"strict"`
	SpacesPerIndent int  `toml:"spaces_per_indent" yaml:"spaces_per_indent"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Indent int    `toml:"indent" yaml:"indent"` // starting JSON indentation level
	Color  string `toml:"color" yaml:"color"`   // "auto" or "never"
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path. The format is chosen by extension: .toml,
// or .yaml/.yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover returns the config file to use: explicit if set, then $MU_CONFIG,
// then the first candidate present in dir. An empty result means defaults.
func Discover(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadDiscovered resolves the config file via Discover and loads it, falling
// back to defaults. The returned path is empty when defaults were used.
func LoadDiscovered(explicit, dir string) (*Config, string, error) {
	path := Discover(explicit, dir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Lexer.SpacesPerIndent == 0 {
		c.Lexer.SpacesPerIndent = 4
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	if c.Lexer.SpacesPerIndent < 1 {
		return fmt.Errorf("lexer.spaces_per_indent must be positive, got %d", c.Lexer.SpacesPerIndent)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative, got %d", c.Output.Indent)
	}
	switch c.Output.Color {
	case "auto", "never":
	default:
		return fmt.Errorf("output.color must be auto or never, got %q", c.Output.Color)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// LexerOptions translates the lexer section into tokenizer options.
func (c *Config) LexerOptions() []lexer.Option {
	return []lexer.Option{
		lexer.WithStrict(c.Lexer.Strict),
		lexer.WithSpacesPerIndent(c.Lexer.SpacesPerIndent),
	}
}

// NoColor reports whether diagnostics must be rendered without styling.
func (c *Config) NoColor() bool {
	return c.Output.Color == "never"
}
