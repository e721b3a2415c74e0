// Package render visualizes a document's reference graph as a node-link
// diagram: participants as boxes, links as labeled arrows, rendered to
// Graphviz DOT or, via [github.com/goccy/go-graphviz], to SVG.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/modelwerk/gltfkit/pkg/document"
)

// Options configures reference-graph rendering.
type Options struct {
	// Collections includes the Root participant and its collection
	// membership edges. When false, only cross-participant references are
	// shown, which keeps large documents readable.
	Collections bool
	// Relations labels every edge with its relation name.
	Relations bool
}

// subTypes are participants that exist only to serve an owner. They are
// drawn dashed and grey, like scaffolding.
var subTypes = map[document.PropertyType]bool{
	document.TypePrimitive:        true,
	document.TypeTextureInfo:      true,
	document.TypeAnimationChannel: true,
	document.TypeAnimationSampler: true,
}

// ToDOT converts the document's reference graph to Graphviz DOT. The
// resulting string renders with [RenderSVG] or any external Graphviz tool.
func ToDOT(d *document.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	rootUID := d.Root().UID()
	seen := map[string]bool{}
	emit := func(p document.Property) {
		id := p.UID().String()
		if seen[id] {
			return
		}
		seen[id] = true
		label := string(p.Type())
		if p.Name() != "" {
			label += "\n" + p.Name()
		}
		attrs := fmt.Sprintf("label=%q", label)
		if subTypes[p.Type()] {
			attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey`
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, attrs)
	}

	if opts.Collections {
		emit(d.Root())
	}
	var edges bytes.Buffer
	for _, l := range d.Graph().Links() {
		src, sok := l.Source().(document.Property)
		tgt, tok := l.Target().(document.Property)
		if !sok || !tok {
			continue
		}
		if !opts.Collections && src.UID() == rootUID {
			continue
		}
		emit(src)
		emit(tgt)
		if opts.Relations {
			fmt.Fprintf(&edges, "  %q -> %q [label=%q, fontsize=10];\n",
				src.UID().String(), tgt.UID().String(), l.Name())
		} else {
			fmt.Fprintf(&edges, "  %q -> %q;\n", src.UID().String(), tgt.UID().String())
		}
	}

	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the diagram scales cleanly
// when embedded in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
