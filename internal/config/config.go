package config

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. COMPOSE_PORTS_FORMAT.
const EnvPrefix = "COMPOSE_PORTS"

type Config struct {
	Format      string   `mapstructure:"format"`  // sparse, flat
	Pattern     string   `mapstructure:"pattern"` // regexp matched against file names
	SkipDirs    []string `mapstructure:"skip_dirs"`
	HaltOnError bool     `mapstructure:"halt_on_error"`
	LogLevel    string   `mapstructure:"log_level"` // debug, info, warn, error
}

// ValidationError reports a config problem with a suggested fix.
type ValidationError struct {
	Field      string
	Message    string
	Suggestion string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Init binds the environment to v. Every key needs a default for
// AutomaticEnv to be picked up by Unmarshal.
func Init(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "sparse")
	v.SetDefault("pattern", `^docker-compose.*\.yml$`)
	v.SetDefault("skip_dirs", []string{})
	v.SetDefault("halt_on_error", false)
	v.SetDefault("log_level", "warn")
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Format:   "sparse",
		Pattern:  `^docker-compose.*\.yml$`,
		LogLevel: "warn",
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.SkipDirs = splitList(cfg.SkipDirs)

	return cfg, nil
}

// splitList splits every element on commas and whitespace and drops empty
// names. Viper may hand over an env list split on commas or not at all.
func splitList(items []string) []string {
	out := []string{}
	for _, item := range items {
		out = append(out, strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return out
}

// Validate checks every field and returns all problems found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	switch c.Format {
	case "sparse", "flat":
	default:
		errs = append(errs, ValidationError{
			Field:      "format",
			Message:    fmt.Sprintf("unknown format %q", c.Format),
			Suggestion: "set " + EnvPrefix + "_FORMAT to sparse or flat",
		})
	}
	if _, err := regexp.Compile(c.Pattern); err != nil {
		errs = append(errs, ValidationError{
			Field:      "pattern",
			Message:    err.Error(),
			Suggestion: "check the regular expression in " + EnvPrefix + "_PATTERN",
		})
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, ValidationError{
			Field:      "log_level",
			Message:    err.Error(),
			Suggestion: "use one of debug, info, warn, error",
		})
	}
	return errs
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// PatternRegexp compiles Pattern. Call Validate first.
func (c *Config) PatternRegexp() *regexp.Regexp {
	return regexp.MustCompile(c.Pattern)
}
