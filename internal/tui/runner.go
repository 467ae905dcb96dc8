package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

// ErrNotInteractive is returned by RunBrowser when no terminal is attached.
var ErrNotInteractive = errors.New("interactive terminal required")

// RunBrowser runs the browser until the user quits.
func RunBrowser(fsys vfs.FileSystem, root *vpath.Path) error {
	if !IsInteractive() {
		return ErrNotInteractive
	}
	if !fsys.DirExists(root) {
		return &vfs.PathError{Op: "browse", Path: root.String(), Err: vfs.ErrNotFound}
	}

	m := NewBrowser(fsys, root, NewPainter(true))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
