package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

// Options configures hierarchy diagram rendering.
type Options struct {
	// Detailed includes factor descriptions and power values in node
	// labels. When false, only the display code is shown.
	Detailed bool
}

// ToDOT converts an analysis result to Graphviz DOT for the hierarchy
// diagram. Each level becomes one same-rank subgraph, level 1 first so
// the most dependent stratum sits on top. Edges are taken from the
// transitive skeleton of the reachability matrix; mutually dependent
// factors keep their cycle arcs.
//
// The resulting DOT string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(res *ism.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph ISM {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.7;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, lv := range res.Levels {
		fmt.Fprintf(&buf, "  { rank=same;")
		for _, i := range lv.Elements {
			fmt.Fprintf(&buf, " %q;", res.Factors[i].ID)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for i, f := range res.Factors {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", f.ID, fmtLabel(res, i, opts.Detailed))
	}

	buf.WriteString("\n")
	sk := ism.Skeleton(res.FRM)
	for i := range sk {
		for j, v := range sk[i] {
			if v == 1 {
				fmt.Fprintf(&buf, "  %q -> %q;\n", res.Factors[i].ID, res.Factors[j].ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(res *ism.Result, i int, detailed bool) string {
	f := res.Factors[i]
	if !detailed {
		return f.Label()
	}

	label := f.Label()
	if f.Description != "" {
		label += "\n" + f.Description
	}
	p := res.MICMAC[i]
	label += fmt.Sprintf("\ndrv %d / dep %d", p.Driving, p.Dependence)
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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
