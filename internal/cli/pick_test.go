package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/rnalayout/pkg/document"
)

func testMolecules() []document.Molecule {
	return []document.Molecule{
		{Name: "alpha", Sequence: "GGGAAACCC", Structure: "(((...)))"},
		{Name: "beta", Structure: "((...))"},
		{Pairs: []int{-1, -1}},
	}
}

func press(m tea.Model, keys ...tea.KeyType) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: k})
	}
	return m
}

func TestMoleculeListSelect(t *testing.T) {
	m := press(newMoleculeListModel(testMolecules()), tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyUp, tea.KeyEnter)

	got := m.(moleculeListModel)
	if got.Selected != 1 {
		t.Errorf("Selected = %d, want 1", got.Selected)
	}
}

func TestMoleculeListQuit(t *testing.T) {
	m := press(newMoleculeListModel(testMolecules()), tea.KeyDown, tea.KeyEsc)

	if got := m.(moleculeListModel); got.Selected != -1 {
		t.Errorf("Selected = %d, want -1 after quitting", got.Selected)
	}
}

func TestMoleculeListScroll(t *testing.T) {
	m := newMoleculeListModel(make([]document.Molecule, 20))
	var model tea.Model = m
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	for i := 0; i < 10; i++ {
		model = press(model, tea.KeyDown)
	}

	got := model.(moleculeListModel)
	if got.Height != 5 {
		t.Errorf("Height = %d, want 5", got.Height)
	}
	if got.Offset != 6 {
		t.Errorf("Offset = %d, want 6", got.Offset)
	}
}

func TestMoleculeListView(t *testing.T) {
	view := newMoleculeListModel(testMolecules()).View()

	for _, want := range []string{"Select Molecule", "alpha", "beta", "molecule 3", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("((((....))))", 5); got != "((((…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("(..)", 5); got != "(..)" {
		t.Errorf("truncate() = %q", got)
	}
}
