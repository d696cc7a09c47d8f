package config

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/conllu/core/errors"
	"github.com/FocuswithJustin/conllu/core/lint"
	"github.com/FocuswithJustin/conllu/internal/logging"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidation("log.level", err.Error())
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return errors.NewValidation("log.format", err.Error())
	}
	if c.Align.Gap < 0 {
		return errors.NewValidation("align.gap", fmt.Sprintf("must not be negative, got %d", c.Align.Gap))
	}
	if _, err := c.LintOptions(); err != nil {
		return err
	}
	return nil
}

// ApplyLogging initializes the global logger from the config.
func (c *Config) ApplyLogging() {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, _ := logging.ParseFormat(c.Log.Format)
	logging.InitLogger(level, format)
}

// lookupRule accepts an ID or name in any case.
func lookupRule(key string) (lint.RuleDef, bool) {
	if r, ok := lint.LookupRule(key); ok {
		return r, true
	}
	if r, ok := lint.LookupRule(strings.ToUpper(key)); ok {
		return r, true
	}
	return lint.LookupRule(strings.ToLower(key))
}

// LintOptions converts the lint section to validator options.
func (c *Config) LintOptions() (lint.Options, error) {
	opts := lint.DefaultOptions()
	for key, enabled := range c.Lint.Rules {
		r, ok := lookupRule(key)
		if !ok {
			return opts, errors.NewValidation("lint.rules", fmt.Sprintf("unknown rule %q", key))
		}
		if !enabled {
			opts.Disabled[r.ID] = true
		}
	}
	for key, value := range c.Lint.Severity {
		r, ok := lookupRule(key)
		if !ok {
			return opts, errors.NewValidation("lint.severity", fmt.Sprintf("unknown rule %q", key))
		}
		sev, err := lint.ParseSeverity(value)
		if err != nil {
			return opts, errors.NewValidation("lint.severity", err.Error())
		}
		opts.Severity[r.ID] = sev
	}
	return opts, nil
}
