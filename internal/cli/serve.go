package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/modelwerk/gltfkit/pkg/cache"
	"github.com/modelwerk/gltfkit/pkg/document"
	"github.com/modelwerk/gltfkit/pkg/gltfio"
	"github.com/modelwerk/gltfkit/pkg/render"
)

// serveCommand creates the serve command for HTTP asset preview.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Preview an asset over HTTP",
		Long: `Serve loads an asset and exposes it over HTTP: the document as glTF
JSON, a validation report, collection statistics, and the reference graph
rendered as SVG. Useful for poking at an asset from a browser or script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			doc, err := gltfio.Import(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			doc.SetLogger(logger)

			report, err := buildReport(args[0], data, cache.Hash(data))
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeHandler(doc, report, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			printSuccess("Serving %s", args[0])
			printDetail("http://%s/", addr)
			printDetail("endpoints: /asset.gltf /report /stats /graph.svg")

			select {
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
				return cmd.Context().Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", c.Config.ServeAddr, "listen address")

	return cmd
}

// serveStats is the payload of the /stats endpoint.
type serveStats struct {
	Collections map[string]int `json:"collections"`
	Properties  int            `json:"properties"`
	Links       int            `json:"links"`
}

// newServeHandler builds the preview router.
func newServeHandler(doc *document.Document, report *Report, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, serveIndexHTML, report.File)
	})

	r.Get("/asset.gltf", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "model/gltf+json")
		if err := gltfio.WriteGLTF(doc, w); err != nil {
			logger.Debug("write asset", "err", err)
		}
	})

	r.Get("/report", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, report)
	})

	r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
		stats := serveStats{
			Collections: map[string]int{},
			Properties:  liveCount(doc),
			Links:       doc.Graph().LinkCount(),
		}
		for _, name := range inspectCollections {
			if n := len(doc.Root().ListProperties(name)); n > 0 {
				stats.Collections[name] = n
			}
		}
		writeJSON(w, stats)
	})

	r.Get("/graph.svg", func(w http.ResponseWriter, req *http.Request) {
		opts := render.Options{
			Collections: req.URL.Query().Get("collections") == "1",
			Relations:   req.URL.Query().Get("relations") == "1",
		}
		svg, err := render.RenderSVG(render.ToDOT(doc, opts))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})

	return r
}

// writeJSON writes v as indented JSON.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

const serveIndexHTML = `<!DOCTYPE html>
<html>
<head><title>gltfkit: %s</title></head>
<body style="font-family: sans-serif; margin: 2rem;">
<h1>gltfkit preview</h1>
<ul>
<li><a href="/asset.gltf">asset.gltf</a></li>
<li><a href="/report">validation report</a></li>
<li><a href="/stats">stats</a></li>
<li><a href="/graph.svg?relations=1">reference graph</a></li>
</ul>
<img src="/graph.svg" style="max-width: 100%%;">
</body>
</html>
`
