package filtergraph

import (
	"fmt"

	"github.com/reelcut/reelcut-api/internal/interval"
)

// TrimConcat builds the graph that cuts the input's video and audio streams
// to the given keep segments and concatenates them back in order. Each
// segment i produces a trim and an atrim node, both reset to zero-based
// presentation time and labeled v{i}/a{i}; a single concat node joins every
// video pad then every audio pad in segment order, producing [outv]/[outa].
//
// Segment order is preserved exactly as given. Concatenating out of
// ascending time order corrupts playback, so callers pass segments the way
// the planner emitted them and this builder never resorts.
func TrimConcat(segments []interval.Interval) *Graph {
	g := &Graph{}
	if len(segments) == 0 {
		return g
	}

	concatInputs := make([]string, 0, len(segments)*2)
	audioPads := make([]string, 0, len(segments))

	for i, seg := range segments {
		vPad := fmt.Sprintf("v%d", i)
		aPad := fmt.Sprintf("a%d", i)

		g.Add(NewChain(
			[]string{"0:v"}, []string{vPad},
			NewFilter("trim", Float("start", seg.Start), Float("end", seg.End)),
			NewFilter("setpts", Expr("", "PTS-STARTPTS")),
		))
		g.Add(NewChain(
			[]string{"0:a"}, []string{aPad},
			NewFilter("atrim", Float("start", seg.Start), Float("end", seg.End)),
			NewFilter("asetpts", Expr("", "PTS-STARTPTS")),
		))

		concatInputs = append(concatInputs, vPad)
		audioPads = append(audioPads, aPad)
	}
	concatInputs = append(concatInputs, audioPads...)

	g.Add(NewChain(
		concatInputs, []string{"outv", "outa"},
		NewFilter("concat",
			Int("n", len(segments)),
			Int("v", 1),
			Int("a", 1),
		),
	))

	return g
}
