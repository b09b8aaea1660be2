package viz

import (
	"strings"

	"github.com/san-kum/cartsim/internal/cart"
	"github.com/san-kum/cartsim/internal/track"
)

// Overlay maps cart positions to their glyphs. Wrecks are drawn first so a
// live cart passing over a crash site stays visible.
func Overlay(carts []cart.Cart) map[track.Coord]rune {
	overlay := make(map[track.Coord]rune, len(carts))
	for _, c := range carts {
		if !c.Alive {
			overlay[c.Pos] = c.Glyph()
		}
	}
	for _, c := range carts {
		if c.Alive {
			overlay[c.Pos] = c.Glyph()
		}
	}
	return overlay
}

// RenderPlain draws the map with carts as plain text.
func RenderPlain(g *track.Grid, carts []cart.Cart) string {
	return g.Render(Overlay(carts))
}

// RenderMap draws the map with carts and wrecks highlighted.
func RenderMap(g *track.Grid, carts []cart.Cart) string {
	plain := RenderPlain(g, carts)

	var b strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(TrackStyle.Render(run.String()))
			run.Reset()
		}
	}

	for _, r := range plain {
		switch r {
		case '^', 'v', '<', '>':
			flush()
			b.WriteString(CartStyle.Render(string(r)))
		case 'X':
			flush()
			b.WriteString(WreckStyle.Render(string(r)))
		case '\n':
			flush()
			b.WriteRune(r)
		default:
			run.WriteRune(r)
		}
	}
	flush()
	return b.String()
}
