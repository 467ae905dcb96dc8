package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

var lsCmd = &cobra.Command{
	Use:   "ls <source> [path]",
	Short: "List a directory of a source",
	Long: `List the directories and files directly below path (default "/").

Directories are printed first with a trailing separator. With -l each entry
also shows its size and last-modified time; without it payloads are not
loaded at all.`,
	Example: `  memvfs ls ./bundle.zip
  memvfs ls -l ./bundle.tar.gz /docs
  memvfs ls --order descending ./project`,
	Args: requireArgs(1, 2, "<source>", "[path]"),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolP("long", "l", false, "Show sizes and modification times")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	long, _ := cmd.Flags().GetBool("long")

	dir := vpath.Root()
	if len(args) > 1 {
		if dir, err = target(args[1]); err != nil {
			return err
		}
	}

	fsys, err := s.open(args[0], !long)
	if err != nil {
		return err
	}
	l, err := fsys.List(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range l.Dirs {
		if long {
			fmt.Fprintf(out, "%10s  %16s  ", "-", "")
		}
		fmt.Fprintln(out, s.painter.Dir(name+s.sep.String()))
	}
	for _, name := range l.Files {
		if long {
			if err := writeLongPrefix(out, fsys, dir.Child(name)); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, s.painter.File(name))
	}
	return nil
}

func writeLongPrefix(out io.Writer, fsys vfs.FileSystem, p *vpath.Path) error {
	size, err := fsys.FileLength(p)
	if err != nil {
		return err
	}
	modified, err := fsys.LastModified(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%10s  %16s  ", humanize.Bytes(uint64(size)), modified.Format(timeLayout))
	return nil
}

const timeLayout = "2006-01-02 15:04"
