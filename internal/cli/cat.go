package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <source> <path>...",
	Short: "Print files of a source",
	Example: `  memvfs cat ./bundle.zip /docs/readme.md
  memvfs cat ./project a.sql b.sql`,
	Args: requireArgs(2, -1, "<source>", "<path>"),
	RunE: runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	fsys, err := s.open(args[0], false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, arg := range args[1:] {
		p, err := target(arg)
		if err != nil {
			return err
		}
		r, err := fsys.OpenRead(p)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, r)
		r.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", arg, err)
		}
	}
	return nil
}
