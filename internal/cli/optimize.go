package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/gltfio"
	"github.com/modelwerk/gltfkit/pkg/transform"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		output  string
		noDedup bool
		noPrune bool
	)

	cmd := &cobra.Command{
		Use:   "optimize <file>",
		Short: "Deduplicate and prune a document",
		Long: `Optimize loads an asset, merges structurally identical accessors,
textures, materials, and meshes into single shared properties, then removes
everything no scene or animation can reach.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := gltfio.Import(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			doc.SetLogger(logger)
			before := liveCount(doc)

			var passes []document.Transform
			if !noDedup {
				passes = append(passes, transform.Dedup())
			}
			if !noPrune {
				passes = append(passes, transform.Prune())
			}

			spin := newSpinnerWithContext(cmd.Context(), "Optimizing...")
			spin.Start()
			if err := doc.Transform(passes...); err != nil {
				spin.StopWithError("Optimization failed")
				return err
			}

			if output == "" {
				output = args[0]
			}
			if err := gltfio.Export(doc, output); err != nil {
				spin.StopWithError("Failed to write output")
				return err
			}

			after := liveCount(doc)
			spin.StopWithSuccess(fmt.Sprintf("Removed %d of %d properties", before-after, before))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: overwrite input)")
	cmd.Flags().BoolVar(&noDedup, "no-dedup", false, "skip the deduplication pass")
	cmd.Flags().BoolVar(&noPrune, "no-prune", false, "skip the prune pass")

	return cmd
}

// liveCount counts the properties still attached to the document's root
// collections.
func liveCount(d *document.Document) int {
	n := 0
	for _, name := range inspectCollections {
		n += len(d.Root().ListProperties(name))
	}
	return n
}
