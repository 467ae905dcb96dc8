package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/internal/config"
	"github.com/vvka-141/memvfs/internal/files/archive"
	"github.com/vvka-141/memvfs/internal/files/disk"
	"github.com/vvka-141/memvfs/internal/logging"
	"github.com/vvka-141/memvfs/internal/tui"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// session carries what every command needs after flags and config are
// resolved.
type session struct {
	cfg     *config.Config
	log     vfs.Logger
	sep     vpath.Separator
	painter tui.Painter
	direct  bool
}

// newSession loads .env, memvfs.yaml and MEMVFS_* variables, then applies
// the persistent flags that were set explicitly.
// Priority (highest to lowest): flags > environment > memvfs.yaml > defaults
func newSession(cmd *cobra.Command) (*session, error) {
	verbose := getVerboseFlag(cmd)
	log := logging.NewConsoleLogger(verbose)

	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("index") {
		cfg.Index, _ = flags.GetString("index")
	}
	if flags.Changed("order") {
		cfg.ListingOrder, _ = flags.GetString("order")
	}
	if flags.Changed("seed") {
		cfg.ShuffleSeed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("fold-case") {
		cfg.FoldCase, _ = flags.GetBool("fold-case")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sep, err := cfg.PathSeparator()
	if err != nil {
		return nil, err
	}
	direct, _ := flags.GetBool("direct")

	log.Verbose("index=%s order=%s fold_case=%t", cfg.Index, cfg.ListingOrder, cfg.FoldCase)
	return &session{
		cfg:     cfg,
		log:     log,
		sep:     sep,
		painter: tui.NewPainter(tui.IsInteractive()),
		direct:  direct,
	}, nil
}

// loadProjectConfig loads godotenv and memvfs.yaml.
// A missing memvfs.yaml yields the defaults.
func loadProjectConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("failed to load memvfs.yaml: %w", err)
	}
	return cfg, nil
}

// open loads source into a filesystem. Archives are recognised by name;
// directories are copied into memory unless --direct is set. enumerate
// skips file payloads where the caller only needs names.
func (s *session) open(source string, enumerate bool) (vfs.FileSystem, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %v", vfs.ErrNotFound, source, err)
	}

	if info.IsDir() && s.direct {
		order, _ := vfs.ParseListingOrder(s.cfg.ListingOrder)
		s.log.Verbose("using %s in place", source)
		return disk.New(source, disk.Options{Order: order, Seed: s.cfg.ShuffleSeed})
	}

	mem, err := s.cfg.MemOptions(s.log)
	if err != nil {
		return nil, err
	}
	opts := archive.Options{Memory: mem, EnumerateOnly: enumerate, Logger: s.log}
	if info.IsDir() {
		return archive.LoadFS(os.DirFS(source), ".", opts)
	}
	return archive.Open(source, opts)
}

// target parses a path argument. Relative paths are taken from the root.
func target(arg string) (*vpath.Path, error) {
	p, err := vpath.Parse(strings.TrimSpace(arg))
	if err != nil {
		return nil, err
	}
	if p.IsRelative() {
		return vpath.Root().Join(p)
	}
	return p, nil
}

// show renders p for output.
func (s *session) show(fsys vfs.FileSystem, p *vpath.Path) string {
	return fsys.PathString(p, s.sep)
}
