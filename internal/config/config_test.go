package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/imarsman/isoutc"
	"github.com/imarsman/isoutc/internal/config"
	"github.com/matryer/is"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "isoutc.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	is := is.New(t)

	cfg := config.Default()
	is.NoErr(cfg.Validate()) // Defaults are valid
	is.Equal(cfg.Options(), isoutc.Options{})
	is.Equal(cfg.Output, config.OutputISO)
}

func TestLoad(t *testing.T) {
	is := is.New(t)

	path := writeConfig(t, `
precision: Second
strict: true
output: unix
log_level: debug
`)
	cfg, err := config.Load(path)
	is.NoErr(err)
	is.Equal(cfg.Precision, "second") // Lower cased
	is.Equal(cfg.Output, config.OutputUnix)
	is.Equal(cfg.LogLevel, "debug")
	is.Equal(cfg.Options(), isoutc.Options{Precision: isoutc.Second, Strict: true})

	// Missing keys keep defaults
	path = writeConfig(t, "strict: true\n")
	cfg, err = config.Load(path)
	is.NoErr(err)
	is.Equal(cfg.Precision, "microsecond")
	is.Equal(cfg.Output, config.OutputISO)
	is.Equal(cfg.LogLevel, "warn")
	is.True(cfg.Strict)
}

func TestLoadErrors(t *testing.T) {
	is := is.New(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	is.True(errors.Is(err, os.ErrNotExist)) // Missing file

	_, err = config.Load(writeConfig(t, "precision: [\n"))
	is.True(err != nil) // Bad YAML

	_, err = config.Load(writeConfig(t, "precision: nanosecond\n"))
	is.True(errors.Is(err, config.ErrUnknownPrecision)) // Unknown precision

	_, err = config.Load(writeConfig(t, "output: xml\n"))
	is.True(err != nil) // Unknown output

	_, err = config.Load(writeConfig(t, "log_level: loud\n"))
	is.True(err != nil) // Unknown level
}

func TestParsePrecision(t *testing.T) {
	is := is.New(t)

	p, err := config.ParsePrecision("s")
	is.NoErr(err)
	is.Equal(p, isoutc.Second)

	p, err = config.ParsePrecision("microsecond")
	is.NoErr(err)
	is.Equal(p, isoutc.Microsecond)
}
