package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requireArgs validates that between minArgs and maxArgs positional
// arguments are provided. names label the arguments in the error message;
// the first one is reported when nothing is given.
func requireArgs(minArgs, maxArgs int, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs {
			missing := names[len(args)]
			return fmt.Errorf(`missing required argument: %s

Usage: %s

Example:
  %s ./bundle.zip`, missing, cmd.UseLine(), cmd.CommandPath())
		}
		if maxArgs >= 0 && len(args) > maxArgs {
			return fmt.Errorf("accepts at most %d arg(s), received %d", maxArgs, len(args))
		}
		return nil
	}
}
