package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/cartsim/internal/cart"
	"github.com/san-kum/cartsim/internal/track"
)

const (
	trackColor = "#5f87af"
	cartColor  = "#00ff00"
	wreckColor = "#ff5f5f"
)

// MapToSVG draws the track as line segments and carts as dots, one cell per
// scale x scale square. Crashed carts are drawn as red crosses.
func MapToSVG(g *track.Grid, carts []cart.Cart, scale float64) string {
	if g == nil {
		return ""
	}
	if scale <= 0 {
		scale = 12
	}

	width := float64(g.Width()) * scale
	height := float64(g.Height()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="%s" stroke-width="%.1f" stroke-linecap="round" fill="none">
`, width, height, width, height, trackColor, scale/6))

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			seg, _ := g.SegmentAt(track.C(x, y))
			writeSegment(&sb, seg, float64(x)*scale, float64(y)*scale, scale)
		}
	}
	sb.WriteString("</g>\n")

	// wrecks first so live carts on a crash site stay on top
	for _, c := range carts {
		if c.Alive {
			continue
		}
		cx, cy := center(c.Pos, scale)
		d := scale * 0.3
		sb.WriteString(fmt.Sprintf(`<path stroke="%s" stroke-width="%.1f" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>
`, wreckColor, scale/6, cx-d, cy-d, cx+d, cy+d, cx-d, cy+d, cx+d, cy-d))
	}
	for _, c := range carts {
		if !c.Alive {
			continue
		}
		cx, cy := center(c.Pos, scale)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, scale*0.35, cartColor))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func center(p track.Coord, scale float64) (float64, float64) {
	return float64(p.X)*scale + scale/2, float64(p.Y)*scale + scale/2
}

func writeSegment(sb *strings.Builder, seg track.Segment, x, y, s float64) {
	mx, my := x+s/2, y+s/2
	switch seg {
	case track.Horizontal:
		sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f H%.1f"/>
`, x, my, x+s))
	case track.Vertical:
		sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f V%.1f"/>
`, mx, y, y+s))
	case track.Intersection:
		sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f H%.1f M%.1f,%.1f V%.1f"/>
`, x, my, x+s, mx, y, y+s))
	case track.CurveForward:
		sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f L%.1f,%.1f"/>
`, x, y+s, x+s, y))
	case track.CurveBackward:
		sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f L%.1f,%.1f"/>
`, x, y, x+s, y+s))
	}
}

// SeriesToSVG plots a series as a polyline scaled to width x height.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	maxY := series[0]
	for _, v := range series {
		if v > maxY {
			maxY = v
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	stepX := float64(width) / float64(len(series)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range series {
		x := float64(i) * stepX
		y := float64(height) - v/maxY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
