package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/internal/tui"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

var browseCmd = &cobra.Command{
	Use:   "browse <source> [path]",
	Short: "Browse a source interactively",
	Long: `Open an interactive browser over a source. Requires a terminal; set
MEMVFS_NON_INTERACTIVE=1 to disable interactive commands.`,
	Args: requireArgs(1, 2, "<source>", "[path]"),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return tui.ErrNotInteractive
	}
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
	fsys, err := s.open(args[0], false)
	if err != nil {
		return err
	}
	return tui.RunBrowser(fsys, root)
}
