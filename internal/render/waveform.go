package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Default size of the waveform box.
const (
	WaveWidth  = 280
	WaveHeight = 60
)

// Point is a polyline vertex.
type Point struct {
	X, Y float64
}

// Polyline maps samples onto a width x height box: x spreads the samples
// evenly from 0 to width, y is inverted so that 100 sits at the top edge.
// It returns nil when there are fewer than two samples.
func Polyline(samples []float64, width, height float64) []Point {
	if len(samples) < 2 {
		return nil
	}
	last := float64(len(samples) - 1)
	pts := make([]Point, len(samples))
	for i, v := range samples {
		pts[i] = Point{
			X: float64(i) / last * width,
			Y: height - v/100*height,
		}
	}
	return pts
}

// PolylinePoints formats points for an SVG points attribute.
func PolylinePoints(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}
	return strings.Join(parts, " ")
}

// SVG renders samples as a standalone SVG document with the signal's
// green-blue-purple gradient. It returns "" when there is nothing to draw.
func SVG(samples []float64) string {
	pts := Polyline(samples, WaveWidth, WaveHeight)
	if pts == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", WaveWidth, WaveHeight)
	sb.WriteString(`  <defs>` + "\n")
	sb.WriteString(`    <linearGradient id="waveGradient" x1="0%" y1="0%" x2="100%" y2="0%">` + "\n")
	sb.WriteString(`      <stop offset="0%" style="stop-color:#10B981;stop-opacity:1" />` + "\n")
	sb.WriteString(`      <stop offset="50%" style="stop-color:#3B82F6;stop-opacity:1" />` + "\n")
	sb.WriteString(`      <stop offset="100%" style="stop-color:#8B5CF6;stop-opacity:1" />` + "\n")
	sb.WriteString(`    </linearGradient>` + "\n")
	sb.WriteString(`  </defs>` + "\n")
	fmt.Fprintf(&sb, `  <polyline points="%s" fill="none" stroke="url(#waveGradient)" stroke-width="2" stroke-linecap="round" />`+"\n", PolylinePoints(pts))
	sb.WriteString(`</svg>` + "\n")
	return sb.String()
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the most recent width samples as block glyphs scaled
// over [0,100]; values outside that range are clamped.
func Sparkline(samples []float64, width int) string {
	if width > 0 && len(samples) > width {
		samples = samples[len(samples)-width:]
	}
	out := make([]rune, len(samples))
	top := len(sparkGlyphs) - 1
	for i, v := range samples {
		idx := int(v / 100 * float64(top))
		if idx < 0 {
			idx = 0
		}
		if idx > top {
			idx = top
		}
		out[i] = sparkGlyphs[idx]
	}
	return string(out)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
