package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/gltfio"
	"github.com/modelwerk/gltfkit/pkg/render"
)

// vizCommand creates the viz command for reference-graph visualization.
func (c *CLI) vizCommand() *cobra.Command {
	var (
		format      string
		output      string
		collections bool
		relations   bool
	)

	cmd := &cobra.Command{
		Use:     "viz <file>",
		Aliases: []string{"dot"},
		Short:   "Render the reference graph as DOT or SVG",
		Long: `Viz loads an asset and renders its reference graph: every property as a
box, every reference as an arrow. The DOT output works with any Graphviz
tool; SVG is rendered in-process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := gltfio.Import(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			doc.SetLogger(logger)

			opts := render.Options{Collections: collections, Relations: relations}
			dot := render.ToDOT(doc, opts)

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				p := newProgress(logger)
				data, err = render.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render SVG: %w", err)
				}
				p.done("Rendered reference graph")
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}

			if output == "" {
				output = outputName(args[0], format)
			}
			if output == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote reference graph")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input name, - for stdout)")
	cmd.Flags().BoolVar(&collections, "collections", false, "include root collection membership edges")
	cmd.Flags().BoolVar(&relations, "relations", false, "label edges with relation names")

	return cmd
}

// outputName derives the output path from the input, swapping the extension.
func outputName(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}
