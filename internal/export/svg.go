// Package export renders concentration trajectories to SVG files.
package export

import (
	"fmt"
	"os"
	"strings"
)

var seriesColors = []string{
	"#e6194b", "#3cb44b", "#4363d8",
	"#f58231", "#911eb4", "#46a5aa",
}

const (
	marginLeft   = 60
	marginRight  = 20
	marginTop    = 20
	marginBottom = 45
	numTicks     = 5
)

// Plot renders one line per species over a shared time axis and
// returns the SVG document. Series must all have the same length as
// times.
func Plot(times []float64, series [][]float64, names []string, width, height int) string {
	if len(times) < 2 || len(series) == 0 {
		return ""
	}

	tMin, tMax := times[0], times[len(times)-1]
	yMin, yMax := series[0][0], series[0][0]
	for _, s := range series {
		for _, v := range s {
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	// 5% headroom so the extremes do not sit on the frame
	pad := (yMax - yMin) * 0.05
	yMin -= pad
	yMax += pad

	plotW := float64(width - marginLeft - marginRight)
	plotH := float64(height - marginTop - marginBottom)
	toX := func(t float64) float64 {
		return float64(marginLeft) + (t-tMin)/(tMax-tMin)*plotW
	}
	toY := func(v float64) float64 {
		return float64(marginTop) + plotH - (v-yMin)/(yMax-yMin)*plotH
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	// frame
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%.0f" height="%.0f" fill="none" stroke="#333333"/>
`, marginLeft, marginTop, plotW, plotH))

	// ticks and grid lines
	for i := 0; i <= numTicks; i++ {
		frac := float64(i) / numTicks

		t := tMin + frac*(tMax-tMin)
		x := toX(t)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.0f" x2="%.1f" y2="%.0f" stroke="#cccccc"/>
`, x, float64(marginTop), x, float64(marginTop)+plotH))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.0f" font-size="11" text-anchor="middle" fill="#333333">%.3g</text>
`, x, float64(marginTop)+plotH+15, t))

		v := yMin + frac*(yMax-yMin)
		y := toY(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#cccccc"/>
`, marginLeft, y, float64(marginLeft)+plotW, y))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="11" text-anchor="end" fill="#333333">%.3g</text>
`, marginLeft-6, y+4, v))
	}

	// axis labels
	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%d" font-size="12" text-anchor="middle" fill="#333333">time</text>
`, float64(marginLeft)+plotW/2, height-10))
	sb.WriteString(fmt.Sprintf(`<text x="15" y="%.0f" font-size="12" text-anchor="middle" fill="#333333" transform="rotate(-90 15 %.0f)">concentration</text>
`, float64(marginTop)+plotH/2, float64(marginTop)+plotH/2))

	// one path per species
	for si, s := range series {
		color := seriesColors[si%len(seriesColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i := range times {
			if i >= len(s) {
				break
			}
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.2f,%.2f", toX(times[i]), toY(s[i])))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", toX(times[i]), toY(s[i])))
			}
		}
		sb.WriteString("\"/>\n")
	}

	// legend
	for si, name := range names {
		if si >= len(series) {
			break
		}
		color := seriesColors[si%len(seriesColors)]
		lx := float64(marginLeft) + plotW - 70
		ly := float64(marginTop) + 14 + float64(si)*16
		sb.WriteString(fmt.Sprintf(`<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="%s" stroke-width="2"/>
`, lx, ly-4, lx+18, ly-4, color))
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" font-size="12" fill="#333333">%s</text>
`, lx+24, ly, name))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WritePlot renders the chart and writes it to path.
func WritePlot(path string, times []float64, series [][]float64, names []string, width, height int) error {
	doc := Plot(times, series, names, width, height)
	if doc == "" {
		return fmt.Errorf("nothing to plot: need at least two samples and one series")
	}
	return os.WriteFile(path, []byte(doc), 0644)
}
