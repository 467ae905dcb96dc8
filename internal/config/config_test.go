package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/memvfs/internal/content"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(body), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeConfig(t, `index: tree
listing_order: shuffled
shuffle_seed: 42
fold_case: true
separator: backward
content:
  initial_capacity: 1024
  growth_increment: 512
  flush_threshold: 16
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "tree", cfg.Index)
	assert.Equal(t, "shuffled", cfg.ListingOrder)
	assert.Equal(t, uint64(42), cfg.ShuffleSeed)
	assert.True(t, cfg.FoldCase)
	assert.Equal(t, "backward", cfg.Separator)
	assert.Equal(t, ContentConfig{InitialCapacity: 1024, GrowthIncrement: 512, FlushThreshold: 16}, cfg.Content)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MinimalYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "listing_order: ascending\n"))
	require.NoError(t, err)

	want := Default()
	want.ListingOrder = "ascending"
	assert.Equal(t, want, cfg)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvIndex:        "tree",
		EnvListingOrder: "descending",
		EnvShuffleSeed:  "9",
		EnvFoldCase:     "true",
		EnvSeparator:    "native",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "tree", cfg.Index)
	assert.Equal(t, "descending", cfg.ListingOrder)
	assert.Equal(t, uint64(9), cfg.ShuffleSeed)
	assert.True(t, cfg.FoldCase)
	assert.Equal(t, "native", cfg.Separator)

	env = map[string]string{EnvShuffleSeed: "-1", EnvFoldCase: "maybe"}
	cfg = Default()
	err := cfg.ApplyEnv(lookup)
	assert.ErrorIs(t, err, vfs.ErrInvalidConfig)
	assert.Contains(t, err.Error(), EnvShuffleSeed)
	assert.Contains(t, err.Error(), EnvFoldCase)
	assert.Equal(t, Default(), cfg, "invalid values leave the fields untouched")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   []string
	}{
		{"default", func(*Config) {}, nil},
		{"bad index", func(c *Config) { c.Index = "btree" }, []string{"btree"}},
		{"bad order", func(c *Config) { c.ListingOrder = "sideways" }, []string{"sideways"}},
		{"bad separator", func(c *Config) { c.Separator = "|" }, []string{"separator"}},
		{"negative sizes", func(c *Config) {
			c.Content.InitialCapacity = -1
			c.Content.FlushThreshold = -1
		}, []string{"initial_capacity", "flush_threshold"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errs == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, vfs.ErrInvalidConfig)
			for _, msg := range tt.errs {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestMemOptions(t *testing.T) {
	cfg := Default()
	cfg.Index = "tree"
	cfg.ListingOrder = "ascending"
	cfg.FoldCase = true
	cfg.Content.GrowthIncrement = 8

	opts, err := cfg.MemOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, vfs.IndexTree, opts.Strategy)
	assert.Equal(t, vfs.OrderAscending, opts.Order)
	assert.True(t, opts.FoldCase)
	assert.Equal(t, content.BufferFactory{
		InitialCapacity: vfs.DefaultInitialCapacity,
		GrowthIncrement: 8,
		FlushThreshold:  vfs.DefaultFlushThreshold,
	}, opts.Factory)

	cfg.Index = "nope"
	_, err = cfg.MemOptions(nil)
	assert.ErrorIs(t, err, vfs.ErrInvalidConfig)
}

func TestPathSeparator(t *testing.T) {
	cfg := Default()
	sep, err := cfg.PathSeparator()
	require.NoError(t, err)
	assert.Equal(t, vpath.Forward, sep)

	cfg.Separator = "sideways"
	_, err = cfg.PathSeparator()
	assert.ErrorIs(t, err, vfs.ErrInvalidConfig)
}
