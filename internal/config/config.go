package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/internal/memfs"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ContentConfig tunes the buffers behind file content.
type ContentConfig struct {
	InitialCapacity int `yaml:"initial_capacity"`
	GrowthIncrement int `yaml:"growth_increment"`
	FlushThreshold  int `yaml:"flush_threshold"`
}

type Config struct {
	Index        string        `yaml:"index"`
	ListingOrder string        `yaml:"listing_order"`
	ShuffleSeed  uint64        `yaml:"shuffle_seed"`
	FoldCase     bool          `yaml:"fold_case"`
	Separator    string        `yaml:"separator"`
	Content      ContentConfig `yaml:"content"`
}

const ConfigFileName = "memvfs.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvIndex        = "MEMVFS_INDEX"
	EnvListingOrder = "MEMVFS_LISTING_ORDER"
	EnvShuffleSeed  = "MEMVFS_SHUFFLE_SEED"
	EnvFoldCase     = "MEMVFS_FOLD_CASE"
	EnvSeparator    = "MEMVFS_SEPARATOR"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Index:        vfs.IndexHash.String(),
		ListingOrder: vfs.OrderNone.String(),
		Separator:    "forward",
		Content: ContentConfig{
			InitialCapacity: vfs.DefaultInitialCapacity,
			GrowthIncrement: vfs.DefaultGrowthIncrement,
			FlushThreshold:  vfs.DefaultFlushThreshold,
		},
	}
}

// Load reads memvfs.yaml from dir. Keys missing from the file keep their
// defaults.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MEMVFS_* variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	if v, ok := lookup(EnvIndex); ok {
		c.Index = v
	}
	if v, ok := lookup(EnvListingOrder); ok {
		c.ListingOrder = v
	}
	if v, ok := lookup(EnvSeparator); ok {
		c.Separator = v
	}
	if v, ok := lookup(EnvShuffleSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not an unsigned integer", vfs.ErrInvalidConfig, EnvShuffleSeed, v))
		} else {
			c.ShuffleSeed = seed
		}
	}
	if v, ok := lookup(EnvFoldCase); ok {
		fold, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not a boolean", vfs.ErrInvalidConfig, EnvFoldCase, v))
		} else {
			c.FoldCase = fold
		}
	}
	return errors.Join(errs...)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := vfs.ParseIndexStrategy(c.Index); err != nil {
		errs = append(errs, err)
	}
	if _, err := vfs.ParseListingOrder(c.ListingOrder); err != nil {
		errs = append(errs, err)
	}
	if _, err := vpath.ParseSeparator(c.Separator); err != nil {
		errs = append(errs, fmt.Errorf("%w: separator %q", vfs.ErrInvalidConfig, c.Separator))
	}
	if c.Content.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("%w: content.initial_capacity must not be negative", vfs.ErrInvalidConfig))
	}
	if c.Content.GrowthIncrement < 0 {
		errs = append(errs, fmt.Errorf("%w: content.growth_increment must not be negative", vfs.ErrInvalidConfig))
	}
	if c.Content.FlushThreshold < 0 {
		errs = append(errs, fmt.Errorf("%w: content.flush_threshold must not be negative", vfs.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// PathSeparator returns the separator used to display paths.
func (c *Config) PathSeparator() (vpath.Separator, error) {
	sep, err := vpath.ParseSeparator(c.Separator)
	if err != nil {
		return vpath.Forward, fmt.Errorf("%w: separator %q", vfs.ErrInvalidConfig, c.Separator)
	}
	return sep, nil
}

// MemOptions translates the configuration into in-memory filesystem options.
func (c *Config) MemOptions(logger vfs.Logger) (memfs.Options, error) {
	if err := c.Validate(); err != nil {
		return memfs.Options{}, err
	}
	strategy, _ := vfs.ParseIndexStrategy(c.Index)
	order, _ := vfs.ParseListingOrder(c.ListingOrder)
	return memfs.Options{
		Strategy: strategy,
		Order:    order,
		Seed:     c.ShuffleSeed,
		FoldCase: c.FoldCase,
		Factory: content.BufferFactory{
			InitialCapacity: c.Content.InitialCapacity,
			GrowthIncrement: c.Content.GrowthIncrement,
			FlushThreshold:  c.Content.FlushThreshold,
		},
		Logger: logger,
	}, nil
}
