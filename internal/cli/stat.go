package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/pkg/vfs"
)

var statCmd = &cobra.Command{
	Use:   "stat <source> <path>",
	Short: "Show details of a file or directory",
	Args:  requireArgs(2, 2, "<source>", "<path>"),
	RunE:  runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	p, err := target(args[1])
	if err != nil {
		return err
	}
	fsys, err := s.open(args[0], false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case fsys.DirExists(p):
		l, err := fsys.List(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Path:     %s\n", s.show(fsys, p))
		fmt.Fprintf(out, "Kind:     %s\n", vfs.KindDirectory)
		fmt.Fprintf(out, "Entries:  %d directories, %d files\n", len(l.Dirs), len(l.Files))
	case fsys.FileExists(p):
		size, err := fsys.FileLength(p)
		if err != nil {
			return err
		}
		modified, err := fsys.LastModified(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Path:     %s\n", s.show(fsys, p))
		fmt.Fprintf(out, "Kind:     %s\n", vfs.KindFile)
		fmt.Fprintf(out, "Size:     %s (%s bytes)\n", humanize.Bytes(uint64(size)), humanize.Comma(size))
		fmt.Fprintf(out, "Modified: %s (%s)\n", modified.Format(time.RFC3339), humanize.Time(modified))
	default:
		return &vfs.PathError{Op: "stat", Path: p.String(), Err: vfs.ErrNotFound}
	}
	return nil
}
