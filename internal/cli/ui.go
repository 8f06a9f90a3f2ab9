package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	stylePaired  = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// printer writes styled status lines to w.
type printer struct {
	w io.Writer
}

func (c *CLI) printer() printer {
	return printer{w: c.Out}
}

// =============================================================================
// Status Output
// =============================================================================

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output path.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(p.w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// stats prints molecule statistics on a single line.
func (p printer) stats(bases, pairs, removed int, cached bool) {
	parts := []string{fmt.Sprintf("%d bases", bases), fmt.Sprintf("%d pairs", pairs)}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d pseudoknot pairs removed", removed))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(p.w, line)
}

// nextStep prints a suggested next command.
func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func (p printer) newline() {
	fmt.Fprintln(p.w)
}

// =============================================================================
// Coordinate Table
// =============================================================================

// coordinates prints the first limit bases of l as a table. A limit of zero
// or less prints every base.
func (p printer) coordinates(l document.Layout, limit int) {
	bases := l.Bases
	if limit > 0 && len(bases) > limit {
		bases = bases[:limit]
	}

	rows := make([][]string, len(bases))
	for i, b := range bases {
		partner := "·"
		if b.Partner != rna.Unpaired {
			partner = strconv.Itoa(b.Partner)
			if b.PairType != "" {
				partner += " " + b.PairType
			}
		}
		rows[i] = []string{
			strconv.Itoa(b.Index),
			b.Base,
			strconv.FormatFloat(b.X, 'f', 2, 64),
			strconv.FormatFloat(b.Y, 'f', 2, 64),
			partner,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Base", "X", "Y", "Partner").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col >= 2 && col <= 3 {
				base = base.Align(lipgloss.Right)
			}
			if row < len(bases) && bases[row].Partner != rna.Unpaired {
				return base.Inherit(stylePaired)
			}
			return base
		})

	fmt.Fprintln(p.w, t.Render())
	if len(bases) < len(l.Bases) {
		p.detail("... %d more bases", len(l.Bases)-len(bases))
	}
}
