// Package config loads postfix.toml.
//
// The file is optional. It is searched from the working directory upwards;
// values it sets are defaults that command-line flags override.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up by Find.
const FileName = "postfix.toml"

type Config struct {
	Rewrite RewriteConfig `toml:"rewrite"`
	Output  OutputConfig  `toml:"output"`
	Cache   CacheConfig   `toml:"cache"`
	Log     LogConfig     `toml:"log"`

	// Path is the file the values came from, "" for defaults.
	Path string `toml:"-"`
}

type RewriteConfig struct {
	MaxDepth   int      `toml:"max_depth"`
	Jobs       int      `toml:"jobs"`       // 0 → GOMAXPROCS
	Extensions []string `toml:"extensions"` // для обхода каталогов
}

type OutputConfig struct {
	Format    string `toml:"format"` // compact | layout
	Highlight bool   `toml:"highlight"`
	Style     string `toml:"style"` // chroma style
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // "" → $XDG_CACHE_HOME/postfix
}

type LogConfig struct {
	Level   string `toml:"level"` // debug | info | warn | error
	File    string `toml:"file"`
	Journal bool   `toml:"journal"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rewrite: RewriteConfig{MaxDepth: 256, Extensions: []string{".rs"}},
		Output:  OutputConfig{Format: "layout", Style: "monokai"},
		Cache:   CacheConfig{Enabled: true},
		Log:     LogConfig{Level: "warn"},
	}
}

// Find walks up from startDir looking for postfix.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load returns the config for startDir: the nearest postfix.toml layered on
// Default, or Default alone when there is none.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile decodes path on top of Default and validates the result.
// Unknown keys are errors.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Rewrite.MaxDepth < 1 || c.Rewrite.MaxDepth > 1<<16 {
		errs = append(errs, fmt.Errorf("[rewrite].max_depth must be in 1..65536, got %d", c.Rewrite.MaxDepth))
	}
	if c.Rewrite.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[rewrite].jobs must not be negative, got %d", c.Rewrite.Jobs))
	}
	for _, ext := range c.Rewrite.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("[rewrite].extensions: %q must start with '.'", ext))
		}
	}
	switch c.Output.Format {
	case "compact", "layout":
	default:
		errs = append(errs, fmt.Errorf("[output].format must be compact or layout, got %q", c.Output.Format))
	}
	if c.Output.Highlight && strings.TrimSpace(c.Output.Style) == "" {
		errs = append(errs, errors.New("[output].style must be set when highlight is on"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("[log].level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// CacheDir resolves the result cache directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	return filepath.Join(base, "postfix"), nil
}
