package contract

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/quarkw/constfit/schema"
)

// Default values for configuration.
const (
	// DefaultPrecisionDigits is the number of significant decimal digits
	// reported for computed values. MaxPrecisionDigits is bounded by the
	// 100-digit constant table minus guard digits.
	DefaultPrecisionDigits = 50
	MinPrecisionDigits     = 10
	MaxPrecisionDigits     = 90

	// DefaultGuardDigits is the extra internal precision carried so the
	// last reported digits are not rounding artifacts.
	DefaultGuardDigits = 10

	// DefaultEleganceWeight is the complexity penalty k in
	// elegance = error * (1 + k*complexity). 0.01 is the alternate value
	// observed in earlier revisions of the scoring formula.
	DefaultEleganceWeight = 0.03
	AltEleganceWeight     = 0.01

	// DefaultScoreEpsilon is the additive floor that keeps the overall
	// score finite for exact matches.
	DefaultScoreEpsilon = 1e-50

	DefaultResultLimit = 25
	MaxResultLimit     = 1000

	DefaultServeAddr     = ":8080"
	DefaultCritiqueModel = "gpt-4o-mini"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the validated runtime configuration.
type Config struct {
	PrecisionDigits int
	GuardDigits     int
	EleganceWeight  float64
	ScoreEpsilon    float64
	Workers         int
	ResultLimit     int
	TargetName      string
	Output          schema.OutputMode
	OutputFile      string
	UseColors       bool
	Width           int           // terminal width override (0 = auto-detect)
	Timeout         time.Duration // optional overall batch deadline (0 = none)

	// Constants holds config-level custom constants. Request-level
	// overrides shadow these, and these shadow the built-ins.
	Constants map[string]string

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // please use env var as this is plaintext

	Critique      bool
	CritiqueModel string

	ServeAddr string
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	PrecisionDigits  int               `mapstructure:"precision"`
	GuardDigits      int               `mapstructure:"guard-digits"`
	EleganceWeight   float64           `mapstructure:"elegance-weight"`
	ScoreEpsilon     float64           `mapstructure:"score-epsilon"`
	Workers          int               `mapstructure:"workers"`
	ResultLimit      int               `mapstructure:"limit"`
	Output           string            `mapstructure:"output"`
	OutputFile       string            `mapstructure:"output-file"`
	Color            string            `mapstructure:"color"`
	Width            int               `mapstructure:"width"`
	TimeoutStr       string            `mapstructure:"timeout"`
	Constants        map[string]string `mapstructure:"constants"`
	ArchiveBackend   string            `mapstructure:"archive-backend"`
	ArchiveDBConnect string            `mapstructure:"archive-db-connect"`
	Critique         bool              `mapstructure:"critique"`
	CritiqueModel    string            `mapstructure:"critique-model"`
	ServeAddr        string            `mapstructure:"addr"`
}

// MantissaBits converts the configured decimal output precision plus guard
// digits into big.Float mantissa bits.
func (c *Config) MantissaBits() uint {
	digits := c.PrecisionDigits + c.GuardDigits
	return uint(math.Ceil(float64(digits)*math.Log2(10))) + 4
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Constants != nil {
		clone.Constants = make(map[string]string, len(c.Constants))
		for k, v := range c.Constants {
			clone.Constants[k] = v
		}
	}
	return &clone
}

// ProcessAndValidate populates cfg from the raw input, applying defaults
// and rejecting out-of-range values.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.PrecisionDigits < MinPrecisionDigits || input.PrecisionDigits > MaxPrecisionDigits {
		return fmt.Errorf("precision must be between %d and %d digits, got %d",
			MinPrecisionDigits, MaxPrecisionDigits, input.PrecisionDigits)
	}
	cfg.PrecisionDigits = input.PrecisionDigits

	cfg.GuardDigits = input.GuardDigits
	if cfg.GuardDigits <= 0 {
		cfg.GuardDigits = DefaultGuardDigits
	}
	if cfg.PrecisionDigits+cfg.GuardDigits > 100 {
		return fmt.Errorf("precision plus guard digits must not exceed 100 (constant table width), got %d",
			cfg.PrecisionDigits+cfg.GuardDigits)
	}

	if input.EleganceWeight < 0 {
		return fmt.Errorf("elegance weight must be non-negative, got %g", input.EleganceWeight)
	}
	cfg.EleganceWeight = input.EleganceWeight

	cfg.ScoreEpsilon = input.ScoreEpsilon
	if cfg.ScoreEpsilon <= 0 {
		cfg.ScoreEpsilon = DefaultScoreEpsilon
	}

	cfg.Workers = input.Workers
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}

	if input.ResultLimit < 1 || input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.ResultLimit)
	}
	cfg.ResultLimit = input.ResultLimit

	cfg.Output = schema.OutputMode(input.Output)
	if !schema.ValidOutputMode(cfg.Output) {
		return fmt.Errorf("output must be text, csv, json or parquet, got %q", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.UseColors = parseYesNo(input.Color)
	cfg.Width = input.Width

	if input.TimeoutStr != "" {
		timeout, err := time.ParseDuration(input.TimeoutStr)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.TimeoutStr, err)
		}
		if timeout < 0 {
			return fmt.Errorf("timeout must not be negative, got %s", timeout)
		}
		cfg.Timeout = timeout
	}

	cfg.Constants = input.Constants

	cfg.ArchiveBackend = schema.DatabaseBackend(input.ArchiveBackend)
	if input.ArchiveBackend == "" {
		cfg.ArchiveBackend = schema.NoneBackend
	}
	if !schema.ValidDatabaseBackend(cfg.ArchiveBackend) {
		return fmt.Errorf("archive backend must be sqlite, mysql, postgresql or none, got %q", input.ArchiveBackend)
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect

	cfg.Critique = input.Critique
	cfg.CritiqueModel = input.CritiqueModel
	if cfg.CritiqueModel == "" {
		cfg.CritiqueModel = DefaultCritiqueModel
	}

	cfg.ServeAddr = input.ServeAddr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	return nil
}

func parseYesNo(s string) bool {
	switch s {
	case "yes", "true", "1", "":
		return true
	}
	return false
}
