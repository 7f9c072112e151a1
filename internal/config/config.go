// Package config loads the YAML configuration that sets defaults for the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mouse-blink/undefender/internal/adapter"
	"github.com/mouse-blink/undefender/internal/domain"
	m "github.com/mouse-blink/undefender/internal/model"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".undefender.yaml"

// Config holds the tunable settings of a run.
type Config struct {
	Workers             int           `yaml:"workers"`
	Engine              string        `yaml:"engine"`
	Isolation           string        `yaml:"isolation"`
	EvalTimeout         time.Duration `yaml:"eval_timeout"`
	Format              bool          `yaml:"format"`
	NormalizeProperties bool          `yaml:"normalize_properties"`
	RenameIdentifiers   bool          `yaml:"rename_identifiers"`
	RenameRanges        []m.RuneRange `yaml:"rename_ranges"`
	Colors              bool          `yaml:"colors"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Workers:             runtime.NumCPU(),
		Engine:              adapter.EngineGoja,
		Isolation:           domain.IsolationGoroutine,
		Format:              true,
		NormalizeProperties: true,
		RenameIdentifiers:   true,
		RenameRanges:        slices.Clone(m.DefaultRenameRanges),
		Colors:              true,
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// falls back to the defaults when it does not exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	if !slices.Contains(adapter.Engines(), c.Engine) {
		errs = append(errs, fmt.Errorf("engine must be one of %v, got %q", adapter.Engines(), c.Engine))
	}

	if c.Isolation != domain.IsolationGoroutine && c.Isolation != domain.IsolationProcess {
		errs = append(errs, fmt.Errorf("isolation must be %q or %q, got %q",
			domain.IsolationGoroutine, domain.IsolationProcess, c.Isolation))
	}

	if c.EvalTimeout < 0 {
		errs = append(errs, fmt.Errorf("eval_timeout must not be negative, got %s", c.EvalTimeout))
	}

	for i, rr := range c.RenameRanges {
		if rr.From > rr.To {
			errs = append(errs, fmt.Errorf("rename_ranges[%d]: from %#x is after to %#x", i, rr.From, rr.To))
		}
	}

	return errors.Join(errs...)
}

// RunOptions converts the configuration into pipeline options.
func (c Config) RunOptions() domain.RunOptions {
	return domain.RunOptions{
		Workers:      c.Workers,
		Engine:       c.Engine,
		Isolation:    c.Isolation,
		Timeout:      c.EvalTimeout,
		Format:       c.Format,
		Normalize:    c.NormalizeProperties,
		Rename:       c.RenameIdentifiers,
		RenameRanges: c.RenameRanges,
	}
}
