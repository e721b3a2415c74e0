package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{}
}

func TestTreeModelRows(t *testing.T) {
	m := NewTreeModel(validDoc(t))

	// Scenes start expanded one level: scene, node, then the node's mesh is
	// still collapsed behind the node row.
	require.Len(t, m.Rows, 2)
	assert.Equal(t, "main", m.Rows[0].prop.Name())
	assert.Equal(t, "root", m.Rows[1].prop.Name())
}

func TestTreeModelExpand(t *testing.T) {
	m := NewTreeModel(validDoc(t))

	next, _ := m.Update(keyMsg("down"))
	m = next.(TreeModel)
	next, _ = m.Update(keyMsg("right"))
	m = next.(TreeModel)

	// Expanding the node reveals its mesh.
	require.Len(t, m.Rows, 3)
	assert.Equal(t, "tri", m.Rows[2].prop.Name())

	next, _ = m.Update(keyMsg("left"))
	m = next.(TreeModel)
	require.Len(t, m.Rows, 2)
}

func TestTreeModelQuit(t *testing.T) {
	m := NewTreeModel(validDoc(t))

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTreeModelView(t *testing.T) {
	m := NewTreeModel(validDoc(t))

	view := m.View()
	assert.Contains(t, view, "Scene Graph")
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "root")
	assert.True(t, strings.Contains(view, "[1/2]"), "row counter missing: %s", view)
}
