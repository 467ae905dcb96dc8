package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memvfs",
	Short: "In-memory virtual filesystem toolkit",
	Long: `memvfs loads an archive or a directory tree into an in-memory virtual
filesystem and inspects it: list, read, stat, checksum, browse and extract.

Sources:
  .zip, .jar, .tar, .tar.gz, .tgz, .tar.zst, .tzst archives
  directories (copied into memory, or used in place with --direct)

Settings are read from memvfs.yaml in the --config directory, then MEMVFS_*
environment variables (a .env file is honoured), then flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - Invalid path
  21 - File or directory not found
  22 - Entry already exists
  23 - Directory not empty
  24 - Operation not supported`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose output for all commands")
	flags.String("config", ".", "Directory holding memvfs.yaml")
	flags.String("index", "", "Directory index strategy: hash or tree")
	flags.String("order", "", "Listing order: none, ascending, descending or shuffled")
	flags.Uint64("seed", 0, "Seed for the shuffled listing order (0 seeds from the clock)")
	flags.Bool("fold-case", false, "Compare paths case-insensitively")
	flags.Bool("direct", false, "Use a directory source in place instead of copying it into memory")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
