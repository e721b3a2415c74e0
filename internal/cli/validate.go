package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/buildinfo"
	"github.com/modelwerk/gltfkit/pkg/cache"
	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/gltfio"
)

// reportTTL bounds how long a cached validation report stays valid. Reports
// are keyed by content hash and tool version, so the TTL exists only to keep
// the cache directory from growing without bound.
const reportTTL = 30 * 24 * time.Hour

// Report is the result of validating a single asset.
type Report struct {
	File       string   `json:"file"`
	Hash       string   `json:"hash"`
	Properties int      `json:"properties"`
	Links      int      `json:"links"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// OK reports whether the asset passed. In strict mode warnings fail too.
func (r *Report) OK(strict bool) bool {
	if len(r.Errors) > 0 {
		return false
	}
	return !strict || len(r.Warnings) == 0
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		strict  bool
		noCache bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Run integrity checks against an asset",
		Long: `Validate loads an asset and checks its structural integrity: asset
version, primitive attributes, animation wiring, and reachable data. Reports
are cached by content hash, so re-validating an unchanged file is instant.
Use --strict to treat warnings as failures.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			assetHash := cache.Hash(data)

			store, err := c.newReportCache(noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			keyer := cache.NewDefaultKeyer()
			key := keyer.ReportKey(assetHash, cache.ReportKeyOpts{
				ToolVersion: buildinfo.Version,
				Strict:      strict,
			})

			var report *Report
			cached := false
			if raw, hit, err := store.Get(ctx, key); err == nil && hit {
				var r Report
				if err := json.Unmarshal(raw, &r); err == nil {
					report = &r
					cached = true
					logger.Debug("report cache hit", "key", key)
				}
			}

			if report == nil {
				p := newProgress(logger)
				report, err = buildReport(args[0], data, assetHash)
				if err != nil {
					return err
				}
				p.done(fmt.Sprintf("Validated %d properties", report.Properties))

				if raw, err := json.Marshal(report); err == nil {
					if err := store.Set(ctx, key, raw, reportTTL); err != nil {
						logger.Debug("report cache write failed", "err", err)
					}
				}
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(report, cached)
			}

			if !report.OK(strict) {
				return fmt.Errorf("%s failed validation", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the report cache")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")

	return cmd
}

// buildReport parses the asset and runs every integrity check.
func buildReport(path string, data []byte, assetHash string) (*Report, error) {
	report := &Report{File: path, Hash: assetHash}

	var doc *document.Document
	var err error
	if gltfio.IsGLB(data) {
		doc, err = gltfio.ReadGLB(bytes.NewReader(data))
	} else {
		doc, err = gltfio.ReadGLTF(bytes.NewReader(data), gltfio.WithBaseDir(filepath.Dir(path)))
	}
	if err != nil {
		// Unparseable assets still get a report so the failure is cacheable.
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}

	report.Properties = liveCount(doc)
	report.Links = doc.Graph().LinkCount()

	checkAsset(doc, report)
	checkMeshes(doc, report)
	checkAnimations(doc, report)
	checkScenes(doc, report)
	checkTextures(doc, report)
	return report, nil
}

func checkAsset(d *document.Document, r *Report) {
	switch v := d.Root().Version(); v {
	case "2.0":
	case "":
		r.Errors = append(r.Errors, "asset: missing version")
	default:
		r.Warnings = append(r.Warnings, fmt.Sprintf("asset: unexpected version %q", v))
	}
}

func checkMeshes(d *document.Document, r *Report) {
	for _, m := range d.Root().ListMeshes() {
		prims := m.ListPrimitives()
		if len(prims) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("mesh %s: no primitives", propLabel(m)))
		}
		for i, p := range prims {
			pos := p.GetAttribute("POSITION")
			if pos == nil {
				r.Errors = append(r.Errors, fmt.Sprintf("mesh %s: primitive %d has no POSITION attribute", propLabel(m), i))
				continue
			}
			if pos.Count() == 0 {
				r.Warnings = append(r.Warnings, fmt.Sprintf("mesh %s: primitive %d has empty POSITION data", propLabel(m), i))
			}
			if idx := p.GetIndices(); idx != nil && idx.Count()%3 != 0 && p.Mode() == 4 {
				r.Warnings = append(r.Warnings, fmt.Sprintf("mesh %s: primitive %d triangle index count %d is not a multiple of 3", propLabel(m), i, idx.Count()))
			}
		}
	}
}

func checkAnimations(d *document.Document, r *Report) {
	for _, a := range d.Root().ListAnimations() {
		for i, ch := range a.ListChannels() {
			if ch.GetSampler() == nil {
				r.Errors = append(r.Errors, fmt.Sprintf("animation %s: channel %d has no sampler", propLabel(a), i))
			}
			if ch.GetTargetNode() == nil {
				r.Errors = append(r.Errors, fmt.Sprintf("animation %s: channel %d has no target node", propLabel(a), i))
			}
		}
		for i, s := range a.ListSamplers() {
			in, out := s.GetInput(), s.GetOutput()
			if in == nil || out == nil {
				r.Errors = append(r.Errors, fmt.Sprintf("animation %s: sampler %d is missing input or output", propLabel(a), i))
				continue
			}
			if in.Count() != out.Count() && s.Interpolation() != "CUBICSPLINE" {
				r.Warnings = append(r.Warnings, fmt.Sprintf("animation %s: sampler %d keyframe count %d does not match value count %d", propLabel(a), i, in.Count(), out.Count()))
			}
		}
	}
}

func checkScenes(d *document.Document, r *Report) {
	scenes := d.Root().ListScenes()
	if len(scenes) == 0 {
		r.Warnings = append(r.Warnings, "document has no scenes")
		return
	}
	if d.Root().GetDefaultScene() == nil {
		r.Warnings = append(r.Warnings, "document has no default scene")
	}
	for _, s := range scenes {
		if len(s.ListChildren()) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("scene %s: empty", propLabel(s)))
		}
	}
}

func checkTextures(d *document.Document, r *Report) {
	for _, t := range d.Root().ListTextures() {
		if len(t.Image()) == 0 && t.URI() == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("texture %s: no image data or URI", propLabel(t)))
		}
	}
}

// propLabel names a property by its name, falling back to its UID.
func propLabel(p document.Property) string {
	if p.Name() != "" {
		return p.Name()
	}
	return p.UID().String()
}

// printReport renders the report for terminal consumption.
func printReport(r *Report, cached bool) {
	for _, msg := range r.Errors {
		printError("%s", msg)
	}
	for _, msg := range r.Warnings {
		printWarning("%s", msg)
	}
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		printSuccess("No issues found")
	} else {
		printInfo("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
	}
	printStats(r.Properties, r.Links, cached)
}
