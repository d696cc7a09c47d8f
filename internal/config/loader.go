package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/FocuswithJustin/conllu/core/errors"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "conllu.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "conllu.yml"

// EnvPrefix prefixes environment overrides, e.g. CONLLU_LOG_LEVEL.
const EnvPrefix = "CONLLU_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// LoadOptions selects where configuration comes from.
type LoadOptions struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Dir is where the upward search for conllu.yaml starts. Defaults to the
	// working directory.
	Dir string
	// SkipEnv ignores CONLLU_* variables.
	SkipEnv bool
}

// Load builds a Config from defaults, the config file and the environment.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log.level":  DefaultLogLevel,
		"log.format": DefaultLogFormat,
		"align.gap":  DefaultAlignGap,
		"index.path": DefaultIndexPath,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := opts.File
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.NewIO("open config", path, err)
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, errors.NewIO("get working directory", "", err)
			}
			dir = wd
		}
		path = FindConfigFile(dir)
	}

	if path != "" {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.NewParse("YAML", path, err)
		}
		// A relative index path in the file is anchored at the file's directory.
		if p := fk.String("index.path"); p != "" && !filepath.IsAbs(p) {
			if err := fk.Set("index.path", filepath.Join(filepath.Dir(path), p)); err != nil {
				return nil, err
			}
		}
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("failed to load env vars: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps an environment variable to a config key. Only the section and
// key are split, so map keys keep their full name:
//
//	CONLLU_ALIGN_GAP                -> align.gap
//	CONLLU_LINT_RULES_L007          -> lint.rules.l007
//	CONLLU_LINT_SEVERITY_ROOT_COUNT -> lint.severity.root-count
func envKey(s string) string {
	parts := strings.SplitN(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", 3)
	if len(parts) == 3 {
		parts[2] = strings.ReplaceAll(parts[2], "_", "-")
	}
	return strings.Join(parts, ".")
}

// configFileIn returns the config file in dir, or "".
func configFileIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FindConfigFile walks up from startDir looking for conllu.yaml or
// conllu.yml. Returns "" when none is found.
func FindConfigFile(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if p := configFileIn(dir); p != "" {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}
