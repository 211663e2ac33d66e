package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration read from JSON as either a string ("150ms") or nanoseconds
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration] failed to parse %q", s)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "[Duration] failed to parse %s", data)
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds the configuration for the game
type Config struct {
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	TickInterval   Duration `json:"tick_interval"`
	AutoRestart    bool     `json:"auto_restart"`
	UseParallel    bool     `json:"use_parallel"`
	Workers        int      `json:"workers"`
	MaxGenerations int      `json:"max_generations"`
	RandomDensity  float64  `json:"random_density"`
	Seed           int64    `json:"seed"`
	Patterns       []string `json:"patterns"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:           30,
		Cols:           24,
		TickInterval:   Duration(150 * time.Millisecond),
		AutoRestart:    true,
		UseParallel:    false,
		Workers:        0, // one per CPU
		MaxGenerations: 1000,
		RandomDensity:  0.15,
		Seed:           0, // time based
		Patterns:       []string{"glider", "blinker", "block"},
	}
}

// Validate checks the values LoadConfig can't catch while decoding
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return errors.Wrapf(ErrInvalidConfig, "board must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick_interval must be positive, got %s", time.Duration(c.TickInterval))
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid values in file: %+v", filename)
	}

	return config, nil
}
