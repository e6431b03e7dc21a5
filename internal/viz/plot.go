package viz

import (
	"errors"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nuckage/internal/analysis"
)

var ErrNoPoints = errors.New("viz: nothing to plot")

// PlotScan draws the threshold (or Q-value) curve of a scan against the
// residual excitation.
func PlotScan(points []analysis.ScanPoint, width, height int, useQ bool, caption string) (string, error) {
	if len(points) == 0 {
		return "", ErrNoPoints
	}

	data := make([]float64, len(points))
	for i, p := range points {
		if useQ {
			data[i] = p.QValue
		} else {
			data[i] = p.Threshold
		}
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(3),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}

	return asciigraph.Plot(data, opts...), nil
}
