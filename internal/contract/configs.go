package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/prpulse/prpulse/schema"
)

// Default values for configuration.
const (
	DefaultPerPage     = 100
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultPrecision   = 2
	MaxPerPage         = 100
	MaxAttemptsCeiling = 10

	// UnboundedFetch is the fetch-limit sentinel meaning "no item ceiling".
	UnboundedFetch = 0
)

// DefaultAPIBaseURL is the default source API root.
const DefaultAPIBaseURL = "https://api.github.com"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	Token      string
	Owner      string
	Repo       string
	APIBaseURL string

	DateRange   schema.DateRange
	FetchLimit  int // 0 means unbounded
	PerPage     int
	MaxAttempts int
	BaseDelay   time.Duration

	WithReviews bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
}

// Repository returns the "owner/name" identity of the analyzed repository.
func (c *Config) Repository() string {
	return c.Owner + "/" + c.Repo
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// SetRepository splits and applies an "owner/name" repository identity.
func (c *Config) SetRepository(repo string) error {
	return validateRepository(c, &ConfigRawInput{RepoStr: repo})
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoStr string

	Token       string `mapstructure:"token"`
	APIURL      string `mapstructure:"api-url"`
	Start       string `mapstructure:"start"`
	End         string `mapstructure:"end"`
	FetchLimit  int    `mapstructure:"fetch-limit"`
	PerPage     int    `mapstructure:"per-page"`
	MaxAttempts int    `mapstructure:"max-attempts"`
	BaseDelay   string `mapstructure:"base-delay"`
	Reviews     bool   `mapstructure:"reviews"`
	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Precision   int    `mapstructure:"precision"`
	Width       int    `mapstructure:"width"`
	Color       string `mapstructure:"color"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateRepository(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, now); err != nil {
		return err
	}
	return nil
}

// ProcessAndValidateServer is ProcessAndValidate for server modes, where the
// repository arrives per request and the positional argument is optional.
func ProcessAndValidateServer(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if strings.TrimSpace(input.RepoStr) != "" {
		if err := validateRepository(cfg, input); err != nil {
			return err
		}
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return processTimeRange(cfg, input, now)
}

// validateRepository splits and checks the "owner/name" positional argument.
func validateRepository(cfg *Config, input *ConfigRawInput) error {
	repo := strings.TrimSpace(input.RepoStr)
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("repository must be in 'owner/name' form, got %q", input.RepoStr)
	}
	cfg.Owner = parts[0]
	cfg.Repo = parts[1]
	return nil
}

// validateSimpleInputs processes all non-time fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Token = input.Token
	cfg.OutputFile = input.OutputFile
	cfg.WithReviews = input.Reviews
	cfg.Width = input.Width

	cfg.APIBaseURL = strings.TrimRight(input.APIURL, "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	cfg.FetchLimit = input.FetchLimit
	if cfg.FetchLimit < 0 {
		return fmt.Errorf("fetch-limit must be %d (unbounded) or a positive count, got %d", UnboundedFetch, input.FetchLimit)
	}

	cfg.PerPage = input.PerPage
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	} else if cfg.PerPage > MaxPerPage {
		cfg.PerPage = MaxPerPage
	}

	cfg.MaxAttempts = input.MaxAttempts
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	} else if cfg.MaxAttempts > MaxAttemptsCeiling {
		cfg.MaxAttempts = MaxAttemptsCeiling
	}

	if input.BaseDelay != "" {
		delay, err := time.ParseDuration(input.BaseDelay)
		if err != nil {
			return fmt.Errorf("invalid base-delay %q: %w", input.BaseDelay, err)
		}
		if delay <= 0 {
			return fmt.Errorf("base-delay must be positive, got %q", input.BaseDelay)
		}
		cfg.BaseDelay = delay
	} else {
		cfg.BaseDelay = DefaultBaseDelay
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	cfg.UseColors = parseBoolish(input.Color, true)
	return nil
}

// processTimeRange parses the start/end bounds, which accept ISO8601 or
// relative forms like "2 weeks ago".
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if input.Start != "" {
		start, err := ParseTimeInput(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		cfg.DateRange.Start = start
	}
	if input.End != "" {
		end, err := ParseTimeInput(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		cfg.DateRange.End = end
	}
	if !cfg.DateRange.Start.IsZero() && !cfg.DateRange.End.IsZero() && cfg.DateRange.End.Before(cfg.DateRange.Start) {
		return fmt.Errorf("end date %s is before start date %s",
			cfg.DateRange.End.Format(DateTimeFormat), cfg.DateRange.Start.Format(DateTimeFormat))
	}
	return nil
}

// parseBoolish interprets yes/no/true/false/1/0 strings with a fallback.
func parseBoolish(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
