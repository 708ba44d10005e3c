package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/imarsman/isoutc"
	"gopkg.in/yaml.v3"
)

// Output formats for converted timestamps
const (
	OutputISO    = "iso"    // 2006-01-02T15:04:05.000000Z
	OutputFields = "fields" // year month day hour minute second microsecond
	OutputUnix   = "unix"   // microseconds since the epoch
)

// Config CLI settings. Flags given on the command line override these.
type Config struct {
	Precision string `yaml:"precision"` // "microsecond" or "second"
	Strict    bool   `yaml:"strict"`    // reject offsets outside 00:00-23:59
	Output    string `yaml:"output"`    // "iso", "fields" or "unix"
	LogLevel  string `yaml:"log_level"` // go-log level name
}

// Default settings used when no file is given
func Default() *Config {
	return &Config{
		Precision: isoutc.Microsecond.String(),
		Strict:    false,
		Output:    OutputISO,
		LogLevel:  "warn",
	}
}

// Load read a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.Precision = strings.ToLower(strings.TrimSpace(c.Precision))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Precision == "" {
		c.Precision = isoutc.Microsecond.String()
	}
	if c.Output == "" {
		c.Output = OutputISO
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate check enumerated fields
func (c *Config) Validate() error {
	if _, err := ParsePrecision(c.Precision); err != nil {
		return err
	}
	switch c.Output {
	case OutputISO, OutputFields, OutputUnix:
	default:
		return fmt.Errorf("unknown output %q, want iso, fields or unix", c.Output)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Options conversion options for the settings
func (c *Config) Options() isoutc.Options {
	p, _ := ParsePrecision(c.Precision)
	return isoutc.Options{Precision: p, Strict: c.Strict}
}

// ErrUnknownPrecision precision name is neither microsecond nor second
var ErrUnknownPrecision = errors.New("unknown precision")

// ParsePrecision map a precision name to isoutc.Precision
func ParsePrecision(name string) (isoutc.Precision, error) {
	switch name {
	case isoutc.Microsecond.String(), "us":
		return isoutc.Microsecond, nil
	case isoutc.Second.String(), "s":
		return isoutc.Second, nil
	}
	return isoutc.Microsecond, fmt.Errorf("%w %q, want microsecond or second", ErrUnknownPrecision, name)
}
