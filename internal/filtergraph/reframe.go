package filtergraph

import (
	"fmt"
)

// ReframeSpec describes a portrait-to-landscape reframing request.
type ReframeSpec struct {
	SourceWidth    int
	SourceHeight   int
	TargetWidth    int
	TargetHeight   int
	BlurBackground bool
}

// IsPortrait reports whether the source needs reframing at all. A source
// that is already as wide as it is tall (or wider) passes through unchanged.
func (s ReframeSpec) IsPortrait() bool {
	return s.SourceHeight > s.SourceWidth
}

// ScaledDimensions returns the foreground dimensions after fitting the
// source inside the target canvas. Both dimensions are rounded down to the
// nearest even value; chroma-subsampled encoders reject odd dimensions.
func (s ReframeSpec) ScaledDimensions() (w, h int) {
	scale := minFloat(
		float64(s.TargetWidth)/float64(s.SourceWidth),
		float64(s.TargetHeight)/float64(s.SourceHeight),
	)
	w = evenFloor(int(float64(s.SourceWidth) * scale))
	h = evenFloor(int(float64(s.SourceHeight) * scale))
	return w, h
}

// Reframe builds the graph that centers a portrait source on a landscape
// canvas, producing [outv]. With BlurBackground the canvas is the source
// scaled to cover the target (overflow cropped) and blurred; otherwise it
// is a solid black canvas of the target size.
//
// Callers must check IsPortrait first: an already-landscape source is a
// no-op and the engine is never invoked for it.
func Reframe(spec ReframeSpec) *Graph {
	scaledW, scaledH := spec.ScaledDimensions()

	g := &Graph{}

	if spec.BlurBackground {
		g.Add(NewChain(
			[]string{"0:v"}, []string{"bg"},
			NewFilter("scale",
				Int("", spec.TargetWidth),
				Int("", spec.TargetHeight),
				Expr("force_original_aspect_ratio", "increase"),
			),
			NewFilter("crop",
				Int("", spec.TargetWidth),
				Int("", spec.TargetHeight),
			),
			NewFilter("boxblur", Int("", 20), Int("", 5)),
		))
		g.Add(NewChain(
			[]string{"0:v"}, []string{"fg"},
			NewFilter("scale", Int("", scaledW), Int("", scaledH)),
		))
		g.Add(NewChain(
			[]string{"bg", "fg"}, []string{"outv"},
			NewFilter("overlay",
				Expr("", "(W-w)/2"),
				Expr("", "(H-h)/2"),
			),
		))
		return g
	}

	g.Add(NewChain(
		[]string{"0:v"}, []string{"fg"},
		NewFilter("scale", Int("", scaledW), Int("", scaledH)),
	))
	g.Add(NewChain(
		nil, []string{"bg"},
		NewFilter("color",
			Expr("", "black"),
			Expr("size", fmt.Sprintf("%dx%d", spec.TargetWidth, spec.TargetHeight)),
		),
	))
	g.Add(NewChain(
		[]string{"bg", "fg"}, []string{"outv"},
		NewFilter("overlay",
			Expr("", "(W-w)/2"),
			Expr("", "(H-h)/2"),
		),
	))

	return g
}

func evenFloor(n int) int {
	if n%2 != 0 {
		return n - 1
	}
	return n
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
