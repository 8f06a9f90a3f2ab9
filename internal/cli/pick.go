package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rnalayout/pkg/document"
)

// errNoSelection is returned when the picker is closed without a choice.
var errNoSelection = errors.New("no molecule selected")

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// moleculeListModel - Interactive molecule selection
// =============================================================================

// moleculeListModel is the bubbletea model for choosing one molecule of a
// library or multi-record file.
type moleculeListModel struct {
	Molecules []document.Molecule
	Cursor    int
	Selected  int
	Height    int
	Offset    int
}

func newMoleculeListModel(mols []document.Molecule) moleculeListModel {
	return moleculeListModel{
		Molecules: mols,
		Selected:  -1,
		Height:    15,
	}
}

func (m moleculeListModel) Init() tea.Cmd {
	return nil
}

func (m moleculeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Molecules)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m moleculeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Molecule"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Molecules))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		mol := m.Molecules[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		length := len(mol.Sequence)
		if length == 0 {
			length = max(len(mol.Structure), len(mol.Pairs))
		}
		rows = append(rows, []string{cursor, mol.DisplayName(i), strconv.Itoa(length), truncate(mol.Structure, 40)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Molecule", "Length", "Structure").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Molecules))))

	return b.String()
}

// pickMolecule lets the user choose one of mols and returns its index.
func (c *CLI) pickMolecule(ctx context.Context, mols []document.Molecule) (int, error) {
	p := tea.NewProgram(newMoleculeListModel(mols), tea.WithContext(ctx), tea.WithOutput(c.Err))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		return -1, err
	}
	fm, ok := final.(moleculeListModel)
	if !ok || fm.Selected < 0 {
		return -1, errNoSelection
	}
	return fm.Selected, nil
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
