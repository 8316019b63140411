package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/biasbars/pkg/biasbars/internalerr"
	"github.com/cognicore/biasbars/pkg/biasbars/wordstat"
)

// Environment variables that override file values.
const (
	EnvLogLevel     = "BIASBARS_LOG_LEVEL"
	EnvLogFormat    = "BIASBARS_LOG_FORMAT"
	EnvGenderPolicy = "BIASBARS_GENDER_POLICY"
)

// Config is the full run configuration.
type Config struct {
	Genders      Genders `yaml:"genders"`
	GenderPolicy string  `yaml:"gender_policy"`
	Tiers        Tiers   `yaml:"tiers"`
	Logging      Logging `yaml:"logging"`
}

// Genders names the two recognized codes.
type Genders struct {
	Women string `yaml:"women"`
	Men   string `yaml:"men"`
}

// Tiers holds the rating cut points.
type Tiers struct {
	LowBelow  float64 `yaml:"low_below"`
	HighAbove float64 `yaml:"high_above"`
}

// Logging controls the slog handler.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Genders:      Genders{Women: string(wordstat.Women), Men: string(wordstat.Men)},
		GenderPolicy: wordstat.Strict.String(),
		Tiers: Tiers{
			LowBelow:  wordstat.DefaultThresholds.LowBelow,
			HighAbove: wordstat.DefaultThresholds.HighAbove,
		},
		Logging: Logging{Level: "warn", Format: "text"},
	}
}

// Load reads a YAML file on top of the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvGenderPolicy); v != "" {
		c.GenderPolicy = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	women := strings.TrimSpace(c.Genders.Women)
	men := strings.TrimSpace(c.Genders.Men)
	if women == "" || men == "" {
		return fmt.Errorf("%w: both gender codes are required", internalerr.ErrInvalidConfig)
	}
	if women == men {
		return fmt.Errorf("%w: gender codes must differ, both are %q", internalerr.ErrInvalidConfig, women)
	}
	if _, err := wordstat.ParseGenderPolicy(c.GenderPolicy); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if c.Tiers.LowBelow > c.Tiers.HighAbove {
		return fmt.Errorf("%w: tiers.low_below (%v) exceeds tiers.high_above (%v)",
			internalerr.ErrInvalidConfig, c.Tiers.LowBelow, c.Tiers.HighAbove)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", internalerr.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// IndexOptions converts the configuration into word-stat index options.
func (c *Config) IndexOptions() []wordstat.Option {
	policy, _ := wordstat.ParseGenderPolicy(c.GenderPolicy)
	return []wordstat.Option{
		wordstat.WithGenders(wordstat.NewGenderSet(
			wordstat.Gender(strings.TrimSpace(c.Genders.Women)),
			wordstat.Gender(strings.TrimSpace(c.Genders.Men)),
		)),
		wordstat.WithPolicy(policy),
		wordstat.WithThresholds(wordstat.Thresholds{
			LowBelow:  c.Tiers.LowBelow,
			HighAbove: c.Tiers.HighAbove,
		}),
	}
}
