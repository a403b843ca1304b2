// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/clikemode/pkg/clike"
)

// DefaultTermWidth is used when the output is not a terminal.
const DefaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token styles
	Keyword  lipgloss.Style
	Atom     lipgloss.Style
	Number   lipgloss.Style
	String   lipgloss.Style
	Comment  lipgloss.Style
	Meta     lipgloss.Style
	Variable lipgloss.Style

	// File listing components
	FilePath   lipgloss.Style
	Language   lipgloss.Style
	LineNumber lipgloss.Style
	Change     lipgloss.Style
	Skipped    lipgloss.Style
	Error      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Warning      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Keyword:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Atom:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Number:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		String:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Comment:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
		Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Variable: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Language:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Change:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Skipped:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Keyword:        plain,
		Atom:           plain,
		Number:         plain,
		String:         plain,
		Comment:        plain,
		Meta:           plain,
		Variable:       plain,
		FilePath:       plain,
		Language:       plain,
		LineNumber:     plain,
		Change:         plain,
		Skipped:        plain,
		Error:          plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		Warning:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ColorEnabled reports whether the styles emit escape sequences.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// Token returns the style used for a highlighting tag. Untagged tokens
// render plain.
func (s *Styles) Token(style clike.Style) lipgloss.Style {
	switch style {
	case clike.StyleKeyword:
		return s.Keyword
	case clike.StyleAtom:
		return s.Atom
	case clike.StyleNumber:
		return s.Number
	case clike.StyleString:
		return s.String
	case clike.StyleComment:
		return s.Comment
	case clike.StyleMeta:
		return s.Meta
	case clike.StyleVariable:
		return s.Variable
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// and DefaultTermWidth otherwise.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return DefaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTermWidth
	}
	return width
}
