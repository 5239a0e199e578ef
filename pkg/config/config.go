package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

// Config holds all configuration options for timelapse.
type Config struct {
	// History extraction and bucketing
	Timeline TimelineConfig `koanf:"timeline" toml:"timeline"`

	// Frame playback
	Playback PlaybackConfig `koanf:"playback" toml:"playback"`

	// Path exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`

	// Logging settings
	Log LogConfig `koanf:"log" toml:"log"`
}

// TimelineConfig controls how history is read and bucketed.
type TimelineConfig struct {
	Interval          string `koanf:"interval" toml:"interval"`
	NativeGit         bool   `koanf:"native_git" toml:"native_git"`
	GitTimeoutSeconds int    `koanf:"git_timeout_seconds" toml:"git_timeout_seconds"`
	Workers           int    `koanf:"workers" toml:"workers"` // 0 = one per CPU
}

// PlaybackConfig controls frame playback.
type PlaybackConfig struct {
	FrameDelayMS int     `koanf:"frame_delay_ms" toml:"frame_delay_ms"`
	Speed        float64 `koanf:"speed" toml:"speed"`
	Loop         bool    `koanf:"loop" toml:"loop"`
}

// ExcludeConfig defines path exclusion patterns (doublestar globs).
type ExcludeConfig struct {
	Patterns []string `koanf:"patterns" toml:"patterns"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours, 0 = never expire
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color  bool   `koanf:"color" toml:"color"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `koanf:"level" toml:"level"`
	Format string `koanf:"format" toml:"format"` // text, json
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeline: TimelineConfig{
			Interval:          string(models.IntervalWeek),
			NativeGit:         true,
			GitTimeoutSeconds: 300,
		},
		Playback: PlaybackConfig{
			FrameDelayMS: 500,
			Speed:        1,
			Loop:         false,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".timelapse/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Interval returns the configured bucket interval, falling back to weeks.
func (c *Config) Interval() models.Interval {
	iv, err := models.ParseInterval(c.Timeline.Interval)
	if err != nil {
		return models.IntervalWeek
	}
	return iv
}

// GitTimeout returns the history extraction timeout.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.Timeline.GitTimeoutSeconds) * time.Second
}

// FrameDelay returns the base delay between frames at speed 1.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.Playback.FrameDelayMS) * time.Millisecond
}

// CacheTTL returns the cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Hour
}

// ValidationError lists every schema violation found in a config file.
type ValidationError struct {
	Source     string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Source, strings.Join(e.Violations, "; "))
}

// Load loads configuration from a file. Values missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if err := validate(path, k.Raw()); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

var schema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// validate checks raw config values against the embedded JSON schema.
func validate(source string, raw map[string]any) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	// Round-trip through JSON so parser-specific number types become
	// plain JSON numbers.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode %s: %w", source, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	printer := message.NewPrinter(language.English)
	var violations []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			violations = append(violations, fmt.Sprintf("%s: %s", loc, e.ErrorKind.LocalizedString(printer)))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.Strings(violations)
	return &ValidationError{Source: source, Violations: violations}
}

// Standard config file names, searched in order.
var configNames = []string{
	"timelapse.toml",
	"timelapse.yaml",
	"timelapse.yml",
	"timelapse.json",
	".timelapse.toml",
	".timelapse.yaml",
	".timelapse.yml",
	".timelapse.json",
}

// Directories searched for config files.
var searchDirs = []string{".", ".timelapse"}

// LoadResult is a loaded config and the file it came from. Source is empty
// when no file was found and defaults are in effect.
type LoadResult struct {
	Config *Config
	Source string
}

type loadOptions struct {
	path string
	dir  string
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

// WithPath loads the given file instead of searching standard locations.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithDir searches standard locations relative to dir.
func WithDir(dir string) LoadOption {
	return func(o *loadOptions) {
		o.dir = dir
	}
}

// LoadConfig loads an explicit config file, or the first config file found
// in the standard locations, or the defaults.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	o := &loadOptions{dir: "."}
	for _, opt := range opts {
		opt(o)
	}

	if o.path != "" {
		cfg, err := Load(o.path)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg, Source: o.path}, nil
	}

	if path := find(o.dir); path != "" {
		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg, Source: path}, nil
	}
	return &LoadResult{Config: DefaultConfig()}, nil
}

func find(base string) string {
	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(base, dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	result, err := LoadConfig()
	if err != nil {
		return DefaultConfig()
	}
	return result.Config
}
