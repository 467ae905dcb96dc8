package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/internal/checksum"
	"github.com/vvka-141/memvfs/internal/files/scanner"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

var sumCmd = &cobra.Command{
	Use:   "sum <source> [path]",
	Short: "Print a checksum for every file of a source",
	Long: `Print one "<checksum>  <path>" line per file below path, in ascending
path order. Paths are relative to path (default "/").

With --normalized the checksum ignores line ending style, trailing spaces
and trailing blank lines, so text files that differ only in formatting
share a checksum.`,
	Example: `  memvfs sum ./bundle.zip
  memvfs sum --algo xxhash --normalized ./project /src`,
	Args: requireArgs(1, 2, "<source>", "[path]"),
	RunE: runSum,
}

func init() {
	sumCmd.Flags().String("algo", "sha256", "Checksum algorithm: sha256 or xxhash")
	sumCmd.Flags().Bool("normalized", false, "Checksum normalized text instead of the exact bytes")
	rootCmd.AddCommand(sumCmd)
}

func runSum(cmd *cobra.Command, args []string) error {
	algo, _ := cmd.Flags().GetString("algo")
	calc, err := checksum.ForName(algo)
	if err != nil {
		return err
	}
	normalized, _ := cmd.Flags().GetBool("normalized")

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

	files, err := scanner.New(calc).Scan(fsys, root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		sum := f.ChecksumRaw
		if normalized {
			sum = f.Checksum
		}
		fmt.Fprintf(out, "%s  %s\n", sum, f.Path)
	}
	s.log.Verbose("%d files checksummed with %s", len(files), calc.Name())
	return nil
}
