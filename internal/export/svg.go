package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/nuckage/internal/analysis"
)

// span is a padded axis range mapped onto [0, size] pixels.
type span struct {
	lo, hi float64
}

// newSpan covers vals with 10% padding on each side. A flat series gets a
// unit range so it draws through the middle.
func newSpan(vals []float64) span {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	width := hi - lo
	if width == 0 {
		width = 1
	}
	return span{lo: lo - width*0.1, hi: hi + width*0.1}
}

func (s span) scale(v float64, size int) float64 {
	return (v - s.lo) / (s.hi - s.lo) * float64(size)
}

// ScanToSVG draws beam threshold (or Q-value when useQ) against residual
// excitation as a single polyline. Fewer than two points give "".
func ScanToSVG(points []analysis.ScanPoint, width, height int, strokeColor string, useQ bool) string {
	if len(points) < 2 {
		return ""
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Ex
		ys[i] = p.Threshold
		if useQ {
			ys[i] = p.QValue
		}
	}
	sx, sy := newSpan(xs), newSpan(ys)

	coords := make([]string, len(points))
	for i := range points {
		coords[i] = fmt.Sprintf("%.1f,%.1f", sx.scale(xs[i], width), float64(height)-sy.scale(ys[i], height))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M%s"/>
</svg>`, width, height, width, height, strokeColor, strings.Join(coords, " L"))
	return sb.String()
}
