package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for command output.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	DirStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	FileStyle = lipgloss.NewStyle()

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SizeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Width(10).
			Align(lipgloss.Right)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)

// Painter renders text with a style only when color is enabled, so piped
// output stays plain.
type Painter struct {
	color bool
}

// NewPainter creates a painter. Pass IsInteractive() for the detected mode.
func NewPainter(color bool) Painter {
	return Painter{color: color}
}

// Paint renders s with style, or returns it unchanged when color is off.
func (p Painter) Paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Dir renders a directory name.
func (p Painter) Dir(name string) string { return p.Paint(DirStyle, name) }

// File renders a file name.
func (p Painter) File(name string) string { return p.Paint(FileStyle, name) }

// Muted renders secondary information such as sizes and timestamps.
func (p Painter) Muted(s string) string { return p.Paint(MutedStyle, s) }

// Title renders a heading.
func (p Painter) Title(s string) string { return p.Paint(TitleStyle, s) }
