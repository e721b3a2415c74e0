package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/gltfio"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize an asset's collections and metadata",
		Long: `Inspect loads a .gltf or .glb file and prints its asset metadata,
per-collection property counts, and reference graph size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := gltfio.Import(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			doc.SetLogger(logger)

			root := doc.Root()
			fmt.Println(StyleTitle.Render(args[0]))
			printNewline()
			printKeyValue("version", root.Version())
			if root.Generator() != "" {
				printKeyValue("generator", root.Generator())
			}
			if root.Copyright() != "" {
				printKeyValue("copyright", root.Copyright())
			}
			if s := root.GetDefaultScene(); s != nil {
				printKeyValue("scene", propLabel(s))
			}
			printNewline()

			fmt.Println(collectionTable(doc).Render())
			printStats(doc.Graph().NodeCount(), doc.Graph().LinkCount(), false)
			printNewline()
			printNextStep("Browse the scene graph", "gltfkit tree "+args[0])
			return nil
		},
	}
}

// inspectCollections lists the Root collections shown by inspect, in the
// order they appear in a glTF file.
var inspectCollections = []string{
	"scenes", "nodes", "meshes", "materials", "textures",
	"accessors", "buffers", "animations", "skins", "cameras", "extensions",
}

// collectionTable renders per-collection property counts, skipping empty
// collections so small assets stay small on screen.
func collectionTable(d *document.Document) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Collection", "Count").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleValue.Padding(0, 1).Align(lipgloss.Right)
			}
			return StyleValue.Padding(0, 1)
		})

	for _, name := range inspectCollections {
		n := len(d.Root().ListProperties(name))
		if n == 0 {
			continue
		}
		t.Row(name, strconv.Itoa(n))
	}
	return t
}
