// Package config resolves zbday settings from defaults, an optional .env
// file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/zarlcorp/zbday/internal/dataset"
)

// default output files per format, used when no path is given
const (
	DefaultOutput     = "sample_birthdays.csv"
	DefaultJSONOutput = "sample_birthdays.json"
)

// environment variables
const (
	EnvOutput   = "ZBDAY_OUTPUT"
	EnvPerMonth = "ZBDAY_PER_MONTH"
	EnvSeed     = "ZBDAY_SEED"
	EnvFormat   = "ZBDAY_FORMAT"
	EnvLogLevel = "ZBDAY_LOG_LEVEL"
)

// Config holds generation settings.
type Config struct {
	Output   string `validate:"required"`
	PerMonth int    `validate:"min=1,max=1000"`
	Seed     uint64 // 0 draws a fresh seed
	Format   string `validate:"oneof=csv json"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

// Default returns the reference settings: 10 records per month written as
// csv to sample_birthdays.csv.
func Default() Config {
	return Config{
		Output:   DefaultOutput,
		PerMonth: dataset.DefaultPerMonth,
		Format:   dataset.FormatCSV,
		LogLevel: "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", strings.ToLower(fe.Field()), fe.ActualTag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) defaultOutput() string {
	if c.Format == dataset.FormatJSON {
		return DefaultJSONOutput
	}
	return DefaultOutput
}

// Seeded reports whether a fixed seed was requested.
func (c Config) Seeded() bool {
	return c.Seed != 0
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// FromEnv overlays environment values on c.
func FromEnv(c Config, getenv func(string) string) (Config, error) {
	if v := getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := getenv(EnvPerMonth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvPerMonth, err)
		}
		c.PerMonth = n
	}
	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v := getenv(EnvFormat); v != "" {
		c.Format = strings.ToLower(v)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return c, nil
}

// FlagSet returns a flag set for cmd that writes parsed values into c.
// Registered flags: -out, -per-month, -seed, -json.
func FlagSet(cmd string, c *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.Output, "out", c.Output, "output file path")
	fs.IntVar(&c.PerMonth, "per-month", c.PerMonth, "records generated per month")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one)")
	fs.BoolFunc("json", "write app birthday records as json", func(string) error {
		c.Format = dataset.FormatJSON
		return nil
	})
	return fs
}

// Load resolves the config for cmd from all sources and validates it.
// extra registers command-specific flags. It returns the remaining
// positional arguments.
func Load(cmd string, args []string, stderr io.Writer, extra ...func(*flag.FlagSet)) (Config, []string, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, nil, err
	}

	c, err := FromEnv(Default(), os.Getenv)
	if err != nil {
		return Config{}, nil, err
	}

	fs := FlagSet(cmd, &c, stderr)
	for _, fn := range extra {
		fn(fs)
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	explicit := os.Getenv(EnvOutput) != ""
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "out" {
			explicit = true
		}
	})
	if !explicit {
		c.Output = c.defaultOutput()
	}

	if err := c.Validate(); err != nil {
		return Config{}, nil, err
	}
	return c, fs.Args(), nil
}
