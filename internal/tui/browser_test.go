package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/memvfs/internal/memfs"
	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

func newBrowserFS(t *testing.T) *memfs.FS {
	t.Helper()
	fsys, err := memfs.New(memfs.Options{Order: vfs.OrderAscending})
	require.NoError(t, err)
	require.NoError(t, fsys.CreateDir(vpath.MustParse("/docs/guides")))
	require.NoError(t, fsys.CreateDir(vpath.MustParse("/src")))
	require.NoError(t, fsys.WriteFile(vpath.MustParse("/docs/readme.md"), []byte("# hello"), vfs.WriteOverwrite))
	require.NoError(t, fsys.WriteFile(vpath.MustParse("/top.txt"), []byte("top"), vfs.WriteOverwrite))
	return fsys
}

func press(t *testing.T, b Browser, msgs ...tea.KeyMsg) Browser {
	t.Helper()
	for _, msg := range msgs {
		m, _ := b.Update(msg)
		var ok bool
		b, ok = m.(Browser)
		require.True(t, ok)
	}
	return b
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestBrowser_Navigate(t *testing.T) {
	b := NewBrowser(newBrowserFS(t), vpath.Root(), NewPainter(false))
	require.NoError(t, b.Err())
	assert.Equal(t, "docs", b.Selected(), "directories come first")

	b = press(t, b, keyUp)
	assert.Equal(t, "docs", b.Selected(), "cursor stops at the top")

	b = press(t, b, keyEnter)
	assert.Equal(t, "/docs", b.Dir().String())
	assert.Equal(t, "guides", b.Selected())

	b = press(t, b, keyDown, keyEnter)
	assert.Contains(t, b.Status(), "readme.md")
	assert.Contains(t, b.Status(), "7 B")
	assert.Equal(t, "/docs", b.Dir().String(), "opening a file stays in place")

	b = press(t, b, keyBack)
	assert.Equal(t, "/", b.Dir().String())
	assert.Equal(t, "docs", b.Selected(), "cursor returns to the directory that was left")

	b = press(t, b, keyBack)
	assert.Equal(t, "/", b.Dir().String(), "cannot leave the root")
}

func TestBrowser_View(t *testing.T) {
	b := NewBrowser(newBrowserFS(t), vpath.Root(), NewPainter(false))
	view := b.View()

	assert.Contains(t, view, "> docs/")
	assert.Contains(t, view, "  src/")
	assert.Contains(t, view, "  top.txt")
	assert.Contains(t, view, b.keys.HelpText())

	b = press(t, b, keyDown, keyEnter)
	assert.Contains(t, b.View(), "(empty)")
}

func TestBrowser_Quit(t *testing.T) {
	b := NewBrowser(newBrowserFS(t), vpath.Root(), NewPainter(false))

	m, cmd := b.Update(keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestBrowser_MissingRoot(t *testing.T) {
	b := NewBrowser(newBrowserFS(t), vpath.MustParse("/nope"), NewPainter(false))
	assert.ErrorIs(t, b.Err(), vfs.ErrNotFound)
	assert.Contains(t, b.View(), SymbolCross)
}

func TestRunBrowser_RequiresTerminal(t *testing.T) {
	t.Setenv("MEMVFS_NON_INTERACTIVE", "1")
	err := RunBrowser(newBrowserFS(t), vpath.Root())
	assert.ErrorIs(t, err, ErrNotInteractive)
}
