// Package config loads toolkit settings from conllu.yaml, CONLLU_*
// environment variables and built-in defaults, in increasing order of
// priority: defaults, file, environment.
package config

// Default configuration values.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultAlignGap  = 2
	DefaultIndexPath = "conllu-index.db"
)

// LogConfig controls internal/logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// LintConfig adjusts the validator. Keys are rule IDs or rule names.
type LintConfig struct {
	Rules    map[string]bool   `koanf:"rules"`    // false disables a rule
	Severity map[string]string `koanf:"severity"` // error, warning or info
}

// AlignConfig controls column display.
type AlignConfig struct {
	Gap int `koanf:"gap"`
}

// IndexConfig locates the sentence index database.
type IndexConfig struct {
	Path string `koanf:"path"`
}

// Config is the complete toolkit configuration.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Lint  LintConfig  `koanf:"lint"`
	Align AlignConfig `koanf:"align"`
	Index IndexConfig `koanf:"index"`

	// File is the config file that was loaded, empty if none.
	File string `koanf:"-"`
}
