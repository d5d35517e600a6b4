package filtergraph

import (
	"fmt"
	"strings"
)

// Layer is one time-bounded subtitle layer composited over the base video
// stream. A layer normally references a rendered bitmap supplied as an
// extra ffmpeg input; when no bitmap could be produced (no usable glyph
// source) Text is set instead and the layer degrades to the engine's
// built-in drawtext pass.
type Layer struct {
	// Input is the ffmpeg input index of the rendered bitmap.
	Input int
	// Y is the vertical placement of the bitmap in pixels.
	Y int
	// Start and End bound the layer's visibility in seconds; the upper
	// bound is exclusive.
	Start float64
	End   float64

	// Drawtext fallback fields, used only when Text is non-empty.
	Text         string
	FontSize     int
	FontColor    string
	OutlineColor string
	OutlineWidth int
	Anchor       string
}

// Compose builds the graph layering every subtitle block over the base
// stream in list order, producing [outv]. Layers are independent: no
// cross-fade, no z-order resolution; overlapping layers simply stack.
func Compose(layers []Layer) *Graph {
	g := &Graph{}

	current := "0:v"
	for i, layer := range layers {
		out := "outv"
		if i < len(layers)-1 {
			out = fmt.Sprintf("v%d", i+1)
		}

		if layer.Text != "" {
			g.Add(NewChain([]string{current}, []string{out}, drawText(layer)))
		} else {
			g.Add(NewChain(
				[]string{current, fmt.Sprintf("%d:v", layer.Input)},
				[]string{out},
				NewFilter("overlay",
					Expr("x", "(W-w)/2"),
					Int("y", layer.Y),
					enableBetween(layer.Start, layer.End),
				),
			))
		}
		current = out
	}

	return g
}

// drawText builds the fallback drawtext filter for a layer whose glyph
// source could not be resolved. The text value is escaped, so subtitle
// content containing graph delimiters cannot break the graph.
func drawText(layer Layer) Filter {
	return NewFilter("drawtext",
		String("text", layer.Text),
		Int("fontsize", layer.FontSize),
		Expr("fontcolor", HexColor(layer.FontColor)),
		Expr("bordercolor", HexColor(layer.OutlineColor)),
		Int("borderw", layer.OutlineWidth),
		Expr("x", "(w-text_w)/2"),
		Expr("y", anchorY(layer.Anchor)),
		enableBetween(layer.Start, layer.End),
	)
}

// enableBetween bounds a filter's activity to [start, end) seconds.
func enableBetween(start, end float64) Arg {
	return String("enable", fmt.Sprintf("between(t,%s,%s)", FormatFloat(start), FormatFloat(end)))
}

// anchorY maps a vertical anchor name to a drawtext y expression.
func anchorY(anchor string) string {
	switch anchor {
	case "top":
		return "h*0.1"
	case "center":
		return "(h-text_h)/2"
	default: // bottom
		return "h*0.85-text_h"
	}
}

// HexColor converts a #RRGGBB color to ffmpeg's 0xRRGGBB form.
func HexColor(hex string) string {
	if hex == "" {
		return "0xFFFFFF"
	}
	return strings.Replace(hex, "#", "0x", 1)
}
