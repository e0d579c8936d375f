// Package sconfig loads the compile session's configuration defaults from an
// optional HJSON document (weekStartsOn, fairDistribution,
// timeLimitSeconds, solutionLimit, plus logging channels), merging them onto
// caller-supplied overrides with dario.cat/mergo.
package sconfig

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/hjson/hjson-go/v4"
	"github.com/jpfluger/shiftsolve/serr"
	"github.com/jpfluger/shiftsolve/slog"
	"github.com/jpfluger/shiftsolve/stime"
)

// Config holds the session's configurable defaults, plus the logging
// channel set.
type Config struct {
	WeekStartsOn     stime.Weekday `json:"weekStartsOn,omitempty"`
	FairDistribution bool          `json:"fairDistribution,omitempty"`
	TimeLimitSeconds int           `json:"timeLimitSeconds,omitempty"`
	SolutionLimit    int           `json:"solutionLimit,omitempty"`
	Channels         slog.Channels `json:"channels,omitempty"`
}

// Default returns the built-in defaults used when no config file is present
// and no override sets a given field.
func Default() Config {
	return Config{
		WeekStartsOn: stime.Monday,
		Channels:     slog.DefaultChannels(),
	}
}

// Load reads an optional HJSON document at path and merges it onto
// Default(), then merges override on top of that (override wins on any
// field it sets). A missing file is not an error — Load returns
// Default()-merged-with-override, since a config file is an optional
// convenience, not a required input.
func Load(path string, override Config) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				raw = nil
			} else {
				return Config{}, serr.NewKind(serr.KindConfig, "read config file %q: %v", path, err)
			}
		}
		if len(raw) > 0 {
			var fromFile Config
			if err := hjson.Unmarshal(raw, &fromFile); err != nil {
				return Config{}, serr.NewKind(serr.KindConfig, "parse hjson config %q: %v", path, err)
			}
			if err := mergo.Merge(&cfg, fromFile, mergo.WithOverride); err != nil {
				return Config{}, serr.NewKind(serr.KindConfig, "merge config file %q: %v", path, err)
			}
		}
	}

	if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
		return Config{}, serr.NewKind(serr.KindConfig, "merge config override: %v", err)
	}
	return cfg, nil
}

// Validate checks the loaded config's scalar invariants:
// weekStartsOn must name a real weekday, and the solver tuning knobs must
// be non-negative when set.
func (c Config) Validate() error {
	switch c.WeekStartsOn {
	case stime.Sunday, stime.Monday, stime.Tuesday, stime.Wednesday, stime.Thursday, stime.Friday, stime.Saturday:
	default:
		return fmt.Errorf("sconfig: invalid weekStartsOn %q", c.WeekStartsOn)
	}
	if c.TimeLimitSeconds < 0 {
		return fmt.Errorf("sconfig: timeLimitSeconds must be >= 0")
	}
	if c.SolutionLimit < 0 {
		return fmt.Errorf("sconfig: solutionLimit must be >= 0")
	}
	return nil
}
