package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/gltfio"
)

// mergeCommand creates the merge command.
func (c *CLI) mergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <file> <file>...",
		Short: "Combine multiple assets into one document",
		Long: `Merge loads two or more assets and merges them into a single document.
Scenes, meshes, and every other collection are appended; references are
remapped so shared structure stays shared. The result is written as .gltf
or .glb depending on the output extension.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			spin := newSpinnerWithContext(cmd.Context(), "Merging assets...")
			spin.Start()

			dst, err := gltfio.Import(args[0])
			if err != nil {
				spin.StopWithError(fmt.Sprintf("Failed to load %s", args[0]))
				return err
			}
			dst.SetLogger(logger)

			for _, path := range args[1:] {
				src, err := gltfio.Import(path)
				if err != nil {
					spin.StopWithError(fmt.Sprintf("Failed to load %s", path))
					return err
				}
				if err := dst.Merge(src); err != nil {
					spin.StopWithError(fmt.Sprintf("Failed to merge %s", path))
					return err
				}
				logger.Debug("merged asset", "path", path)
			}

			if err := gltfio.Export(dst, output); err != nil {
				spin.StopWithError("Failed to write output")
				return err
			}

			spin.StopWithSuccess(fmt.Sprintf("Merged %d assets", len(args)))
			printFile(output)
			printStats(dst.Graph().NodeCount(), dst.Graph().LinkCount(), false)
			printNextStep("Deduplicate shared data", "gltfkit optimize "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "merged.glb", "output path (.gltf or .glb)")

	return cmd
}
