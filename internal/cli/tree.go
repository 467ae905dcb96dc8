package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/internal/files/scanner"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

var treeCmd = &cobra.Command{
	Use:   "tree <source> [path]",
	Short: "Print the directory tree of a source",
	Args:  requireArgs(1, 2, "<source>", "[path]"),
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	root := vpath.Root()
	if len(args) > 1 {
		if root, err = target(args[1]); err != nil {
			return err
		}
	}
	fsys, err := s.open(args[0], true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var dirs, files int64
	err = scanner.Walk(fsys, root, func(p *vpath.Path, kind vfs.Kind) error {
		depth := p.Len() - root.Len()
		if depth == 0 {
			fmt.Fprintln(out, s.painter.Title(s.show(fsys, p)))
			return nil
		}
		indent := strings.Repeat("  ", depth-1)
		if kind == vfs.KindDirectory {
			dirs++
			fmt.Fprintln(out, indent+s.painter.Dir(p.Name()+s.sep.String()))
		} else {
			files++
			fmt.Fprintln(out, indent+s.painter.File(p.Name()))
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, s.painter.Muted(fmt.Sprintf("%s directories, %s files", humanize.Comma(dirs), humanize.Comma(files))))
	return nil
}
