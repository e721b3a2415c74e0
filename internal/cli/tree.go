package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/gltfio"
)

// Tree styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeTypeStyle     = lipgloss.NewStyle().Foreground(colorGray)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// treeCommand creates the tree command for interactive scene-graph browsing.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Browse the scene graph interactively",
		Long: `Tree loads an asset and opens an interactive browser over its scene
graph: scenes at the top, node hierarchies below, meshes, cameras, and skins
as leaves. Expand and collapse with the arrow keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := gltfio.Import(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			doc.SetLogger(logger)

			m := NewTreeModel(doc)
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tree browser: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// TreeModel - Interactive scene graph browsing
// =============================================================================

// treeRow is one visible line of the scene graph.
type treeRow struct {
	prop     document.Property
	depth    int
	children []document.Property
}

// TreeModel is the bubbletea model for scene graph browsing.
type TreeModel struct {
	Doc      *document.Document
	Rows     []treeRow
	Expanded map[uuid.UUID]bool
	Cursor   int
	Height   int
	Offset   int
}

// NewTreeModel creates a tree model with every scene expanded one level.
func NewTreeModel(d *document.Document) TreeModel {
	m := TreeModel{
		Doc:      d,
		Expanded: map[uuid.UUID]bool{},
		Height:   15,
	}
	for _, s := range d.Root().ListScenes() {
		m.Expanded[s.UID()] = true
	}
	m.rebuild()
	return m
}

// treeChildren lists the properties shown beneath p.
func treeChildren(p document.Property) []document.Property {
	var out []document.Property
	switch v := p.(type) {
	case *document.Scene:
		for _, n := range v.ListChildren() {
			out = append(out, n)
		}
	case *document.Node:
		for _, n := range v.ListChildren() {
			out = append(out, n)
		}
		if mesh := v.GetMesh(); mesh != nil {
			out = append(out, mesh)
		}
		if cam := v.GetCamera(); cam != nil {
			out = append(out, cam)
		}
		if skin := v.GetSkin(); skin != nil {
			out = append(out, skin)
		}
	case *document.Mesh:
		for _, prim := range v.ListPrimitives() {
			out = append(out, prim)
		}
	}
	return out
}

// rebuild flattens the expanded parts of the graph into visible rows.
func (m *TreeModel) rebuild() {
	m.Rows = m.Rows[:0]
	for _, s := range m.Doc.Root().ListScenes() {
		m.appendRows(s, 0)
	}
	if m.Cursor >= len(m.Rows) {
		m.Cursor = len(m.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *TreeModel) appendRows(p document.Property, depth int) {
	children := treeChildren(p)
	m.Rows = append(m.Rows, treeRow{prop: p, depth: depth, children: children})
	if !m.Expanded[p.UID()] {
		return
	}
	for _, child := range children {
		m.appendRows(child, depth+1)
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if row := m.currentRow(); row != nil && len(row.children) > 0 {
				m.Expanded[row.prop.UID()] = !m.Expanded[row.prop.UID()]
				m.rebuild()
			}
		case "right", "l":
			if row := m.currentRow(); row != nil && len(row.children) > 0 {
				m.Expanded[row.prop.UID()] = true
				m.rebuild()
			}
		case "left", "h":
			if row := m.currentRow(); row != nil {
				m.Expanded[row.prop.UID()] = false
				m.rebuild()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) currentRow() *treeRow {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return nil
	}
	return &m.Rows[m.Cursor]
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene Graph"))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  ⏎ toggle  ←/→ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if len(row.children) > 0 {
			marker = "+ "
			if m.Expanded[row.prop.UID()] {
				marker = "- "
			}
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + rowLabel(row.prop)
		if i == m.Cursor {
			b.WriteString(treeSelectedStyle.Render(line))
		} else {
			b.WriteString(treeNormalStyle.Render(line))
		}
		b.WriteString(" ")
		b.WriteString(treeTypeStyle.Render(string(row.prop.Type())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if row := m.currentRow(); row != nil {
		b.WriteString(treeDimStyle.Render("  " + rowDetail(row.prop)))
		b.WriteString("\n")
	}
	b.WriteString(treeDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// rowLabel names a row, preferring the property name.
func rowLabel(p document.Property) string {
	if p.Name() != "" {
		return p.Name()
	}
	return strings.ToLower(string(p.Type()))
}

// rowDetail summarizes the selected property on one line.
func rowDetail(p document.Property) string {
	switch v := p.(type) {
	case *document.Scene:
		return fmt.Sprintf("%d root nodes", len(v.ListChildren()))
	case *document.Node:
		t := v.Translation()
		s := v.Scale()
		return fmt.Sprintf("translation (%.2f, %.2f, %.2f) · scale (%.2f, %.2f, %.2f) · %d children",
			t[0], t[1], t[2], s[0], s[1], s[2], len(v.ListChildren()))
	case *document.Mesh:
		return fmt.Sprintf("%d primitives", len(v.ListPrimitives()))
	case *document.Primitive:
		n := 0
		if pos := v.GetAttribute("POSITION"); pos != nil {
			n = pos.Count()
		}
		detail := fmt.Sprintf("%d vertices", n)
		if mat := v.GetMaterial(); mat != nil {
			detail += " · material " + propLabel(mat)
		}
		return detail
	case *document.Camera:
		return v.Projection() + " projection"
	case *document.Skin:
		return fmt.Sprintf("%d joints", len(v.ListJoints()))
	}
	return string(p.Type())
}
