package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vvka-141/memvfs/pkg/vfs"
	"github.com/vvka-141/memvfs/pkg/vpath"
)

type browserEntry struct {
	name string
	dir  bool
}

// Browser is a tea.Model that walks a vfs.FileSystem one directory at a
// time. Directories are listed before files, each in the filesystem's
// listing order.
type Browser struct {
	fsys    vfs.FileSystem
	root    *vpath.Path
	cwd     *vpath.Path
	entries []browserEntry
	cursor  int
	status  string
	err     error
	keys    KeyMap
	painter Painter
	height  int
	quit    bool
}

// NewBrowser creates a browser positioned at root.
func NewBrowser(fsys vfs.FileSystem, root *vpath.Path, painter Painter) Browser {
	b := Browser{
		fsys:    fsys,
		root:    root,
		cwd:     root,
		keys:    DefaultKeyMap(),
		painter: painter,
		height:  20,
	}
	b.enter(root)
	return b
}

func (b *Browser) enter(dir *vpath.Path) {
	l, err := b.fsys.List(dir)
	if err != nil {
		b.err = err
		return
	}
	entries := make([]browserEntry, 0, len(l.Dirs)+len(l.Files))
	for _, name := range l.Dirs {
		entries = append(entries, browserEntry{name: name, dir: true})
	}
	for _, name := range l.Files {
		entries = append(entries, browserEntry{name: name})
	}
	b.cwd, b.entries, b.cursor, b.status, b.err = dir, entries, 0, "", nil
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			b.quit = true
			return b, tea.Quit
		case key.Matches(msg, b.keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}
		case key.Matches(msg, b.keys.Down):
			if b.cursor < len(b.entries)-1 {
				b.cursor++
			}
		case key.Matches(msg, b.keys.Open):
			b.open()
		case key.Matches(msg, b.keys.Back):
			if b.cwd.Len() > b.root.Len() {
				name := b.cwd.Name()
				b.enter(b.cwd.Parent())
				b.focus(name)
			}
		case key.Matches(msg, b.keys.Top):
			b.enter(b.root)
		}
	case tea.WindowSizeMsg:
		b.height = max(msg.Height-4, 1)
	}
	return b, nil
}

func (b *Browser) open() {
	if len(b.entries) == 0 {
		return
	}
	e := b.entries[b.cursor]
	p := b.cwd.Child(e.name)
	if e.dir {
		b.enter(p)
		return
	}

	size, err := b.fsys.FileLength(p)
	if err != nil {
		b.err = err
		return
	}
	modified, err := b.fsys.LastModified(p)
	if err != nil {
		b.err = err
		return
	}
	b.status = fmt.Sprintf("%s  %s  modified %s", e.name, humanize.Bytes(uint64(size)), humanize.Time(modified))
}

func (b *Browser) focus(name string) {
	for i, e := range b.entries {
		if e.name == name {
			b.cursor = i
			return
		}
	}
}

// View implements tea.Model.
func (b Browser) View() string {
	if b.quit {
		return ""
	}

	var s strings.Builder
	s.WriteString(b.painter.Title(b.fsys.PathString(b.cwd, vpath.Forward)))
	s.WriteString("\n\n")

	if len(b.entries) == 0 {
		s.WriteString(b.painter.Muted("  (empty)"))
		s.WriteString("\n")
	}

	// keep the cursor inside the visible window
	start := 0
	if b.cursor >= b.height {
		start = b.cursor - b.height + 1
	}
	end := min(start+b.height, len(b.entries))
	for i := start; i < end; i++ {
		e := b.entries[i]
		cursor := "  "
		if i == b.cursor {
			cursor = "> "
		}
		name := b.painter.File(e.name)
		if e.dir {
			name = b.painter.Dir(e.name + "/")
		}
		s.WriteString(cursor + name + "\n")
	}

	s.WriteString("\n")
	switch {
	case b.err != nil:
		s.WriteString(b.painter.Paint(ErrorStyle, SymbolCross+" "+b.err.Error()))
	case b.status != "":
		s.WriteString(b.status)
	default:
		s.WriteString(b.painter.Muted(b.keys.HelpText()))
	}
	return s.String()
}

// Dir returns the directory being displayed.
func (b Browser) Dir() *vpath.Path { return b.cwd }

// Selected returns the name under the cursor, or "" for an empty directory.
func (b Browser) Selected() string {
	if len(b.entries) == 0 {
		return ""
	}
	return b.entries[b.cursor].name
}

// Status returns the details line of the last opened file.
func (b Browser) Status() string { return b.status }

// Err returns the error of the last failed navigation.
func (b Browser) Err() error { return b.err }
