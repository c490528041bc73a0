package ia

import (
	"math"
	"strconv"
	"strings"

	"go.viam.com/naio/sensor"
)

// formatFloat renders v with the shortest exact representation, keeping a trailing ".0" on
// integral values so 1 prints as "1.0". Very large and very small magnitudes use exponent
// notation.
func formatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}
	format := byte('f')
	if abs := math.Abs(v); abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		format = 'e'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func formatFloats(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

// formatScan renders a scan as "[r0, r1, ...]".
func formatScan(scan sensor.LidarScan) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range scan {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(r), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}
