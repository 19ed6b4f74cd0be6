package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

const (
	micmacMargin   = 60.0
	micmacPointR   = 6.0
	micmacFontSize = 14.0
)

var quadrantFill = map[ism.Quadrant]string{
	ism.QuadrantAutonomous: "#f5f5f5",
	ism.QuadrantDependent:  "#fde8e8",
	ism.QuadrantDriver:     "#e8f3fd",
	ism.QuadrantLinkage:    "#fdf6e3",
}

// MICMACSVG renders the driving-power versus dependence-power chart as a
// self-contained SVG. Dependence power runs along the x-axis, driving
// power up the y-axis; the split lines at N/2 carve the plane into the
// four quadrant regions. Factors sharing a coordinate are drawn as one
// point with a combined label.
func MICMACSVG(res *ism.Result, width, height float64) []byte {
	n := float64(res.N())
	if n == 0 {
		n = 1
	}

	plotW := width - 2*micmacMargin
	plotH := height - 2*micmacMargin

	// Power p in [1, N] maps into the plot area; the origin is bottom-left.
	x := func(dependence float64) float64 { return micmacMargin + dependence/n*plotW }
	y := func(driving float64) float64 { return height - micmacMargin - driving/n*plotH }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%.0f" height="%.0f" fill="white"/>`+"\n", width, height)

	renderQuadrants(&buf, res.Split, n, x, y)
	renderAxes(&buf, width, height)
	renderSplitLines(&buf, res.Split, x, y, width, height)
	renderPoints(&buf, res, x, y)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderQuadrants(buf *bytes.Buffer, split, n float64, x, y func(float64) float64) {
	regions := []struct {
		quadrant         ism.Quadrant
		x0, y0, x1, y1   float64
		labelDX, labelDY float64
		anchor           string
	}{
		{ism.QuadrantAutonomous, 0, 0, split, split, 8, -8, "start"},
		{ism.QuadrantDependent, split, 0, n, split, -8, -8, "end"},
		{ism.QuadrantDriver, 0, split, split, n, 8, 20, "start"},
		{ism.QuadrantLinkage, split, split, n, n, -8, 20, "end"},
	}

	for _, r := range regions {
		left, top := x(r.x0), y(r.y1)
		w, h := x(r.x1)-x(r.x0), y(r.y0)-y(r.y1)
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			left, top, w, h, quadrantFill[r.quadrant])

		lx := left + r.labelDX
		if r.anchor == "end" {
			lx = left + w + r.labelDX
		}
		ly := top + r.labelDY
		if r.labelDY < 0 {
			ly = top + h + r.labelDY
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="#888" text-anchor="%s">%s</text>`+"\n",
			lx, ly, micmacFontSize, r.anchor, strings.ToUpper(string(r.quadrant)))
	}
}

func renderAxes(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n",
		micmacMargin, height-micmacMargin, width-micmacMargin, height-micmacMargin)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n",
		micmacMargin, height-micmacMargin, micmacMargin, micmacMargin)

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle">dependence power</text>`+"\n",
		width/2, height-micmacMargin/3, micmacFontSize)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">driving power</text>`+"\n",
		micmacMargin/3, height/2, micmacFontSize, micmacMargin/3, height/2)
}

func renderSplitLines(buf *bytes.Buffer, split float64, x, y func(float64) float64, width, height float64) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" stroke-dasharray="6,4"/>`+"\n",
		x(split), micmacMargin, x(split), height-micmacMargin)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" stroke-dasharray="6,4"/>`+"\n",
		micmacMargin, y(split), width-micmacMargin, y(split))
}

func renderPoints(buf *bytes.Buffer, res *ism.Result, x, y func(float64) float64) {
	type coord struct{ driving, dependence int }
	grouped := make(map[coord][]string)
	for _, p := range res.MICMAC {
		c := coord{p.Driving, p.Dependence}
		grouped[c] = append(grouped[c], res.Factors[p.Factor].Label())
	}

	coords := make([]coord, 0, len(grouped))
	for c := range grouped {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].driving != coords[j].driving {
			return coords[i].driving < coords[j].driving
		}
		return coords[i].dependence < coords[j].dependence
	})

	for _, c := range coords {
		px, py := x(float64(c.dependence)), y(float64(c.driving))
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="#2b6cb0"/>`+"\n",
			px, py, micmacPointR)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle">%s</text>`+"\n",
			px, py-micmacPointR-4, micmacFontSize, escapeText(strings.Join(grouped[c], ", ")))
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
