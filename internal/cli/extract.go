package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/memvfs/internal/files/disk"
	"github.com/vvka-141/memvfs/internal/files/scanner"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

var extractCmd = &cobra.Command{
	Use:   "extract <source> <directory>",
	Short: "Copy every entry of a source into a directory on disk",
	Long: `Copy the directories and files of a source into directory, creating it
if needed. Existing files are overwritten; existing directories are kept.`,
	Example: `  memvfs extract ./bundle.tar.zst ./out`,
	Args:    requireArgs(2, 2, "<source>", "<directory>"),
	RunE:    runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	src, err := s.open(args[0], false)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(args[1], 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", args[1], err)
	}
	dst, err := disk.New(args[1], disk.Options{})
	if err != nil {
		return err
	}

	dirs, files, err := copyTree(src, dst, vpath.Root(), s.log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "extracted %d directories and %d files to %s\n", dirs, files, dst.Root())
	return nil
}

// copyTree copies the subtree below root of src onto the same paths of dst.
func copyTree(src, dst vfs.FileSystem, root *vpath.Path, log vfs.Logger) (int, int, error) {
	var dirs, files int
	err := scanner.Walk(src, root, func(p *vpath.Path, kind vfs.Kind) error {
		if kind == vfs.KindDirectory {
			if p.Len() == 0 || dst.DirExists(p) {
				return nil
			}
			if err := dst.CreateDir(p); err != nil {
				return err
			}
			dirs++
			return nil
		}

		if err := copyFile(src, dst, p); err != nil {
			return err
		}
		log.Verbose("copied %s", p)
		files++
		return nil
	})
	return dirs, files, err
}

func copyFile(src, dst vfs.FileSystem, p *vpath.Path) error {
	r, err := src.OpenRead(p)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := dst.OpenWrite(p, vfs.WriteOverwrite)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("failed to copy %s: %w", p, err)
	}
	return w.Close()
}
