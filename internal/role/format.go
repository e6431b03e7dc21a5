package role

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders v the way role files have always been written:
// shortest round-trip digits, a trailing ".0" on integral values and
// exponent form below 1e-4 or from 1e16 up ("0.0", "2.5", "1e-05").
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
