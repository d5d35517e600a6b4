package filtergraph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/reelcut/reelcut-api/internal/interval"
)

func TestTrimConcat(t *testing.T) {
	segments := []interval.Interval{
		{Start: 0, End: 5.1},
		{Start: 9.9, End: 15},
	}

	g := TrimConcat(segments)
	got := g.String()

	want := "[0:v]trim=start=0:end=5.1,setpts=PTS-STARTPTS[v0];" +
		"[0:a]atrim=start=0:end=5.1,asetpts=PTS-STARTPTS[a0];" +
		"[0:v]trim=start=9.9:end=15,setpts=PTS-STARTPTS[v1];" +
		"[0:a]atrim=start=9.9:end=15,asetpts=PTS-STARTPTS[a1];" +
		"[v0][v1][a0][a1]concat=n=2:v=1:a=1[outv][outa]"
	if got != want {
		t.Errorf("graph mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestTrimConcat_NodeCounts(t *testing.T) {
	segments := []interval.Interval{
		{Start: 0, End: 1},
		{Start: 2, End: 3},
		{Start: 4, End: 5},
		{Start: 6, End: 7},
	}

	got := TrimConcat(segments).String()

	if n := strings.Count(got, "]trim="); n != len(segments) {
		t.Errorf("expected %d trim nodes, got %d", len(segments), n)
	}
	if n := strings.Count(got, "atrim="); n != len(segments) {
		t.Errorf("expected %d atrim nodes, got %d", len(segments), n)
	}
	if n := strings.Count(got, "concat="); n != 1 {
		t.Errorf("expected 1 concat node, got %d", n)
	}
	if !strings.Contains(got, fmt.Sprintf("concat=n=%d:v=1:a=1", len(segments))) {
		t.Errorf("concat node missing segment count: %s", got)
	}
}

func TestTrimConcat_PreservesInputOrder(t *testing.T) {
	forward := []interval.Interval{{Start: 1, End: 2}, {Start: 3, End: 4}}
	reversed := []interval.Interval{{Start: 3, End: 4}, {Start: 1, End: 2}}

	f := TrimConcat(forward).String()
	r := TrimConcat(reversed).String()

	// No independent resort: reordering the input must reorder the output
	// identically, with v0 always bound to the first input segment.
	if !strings.Contains(f, "trim=start=1:end=2,setpts=PTS-STARTPTS[v0]") {
		t.Errorf("forward order broken: %s", f)
	}
	if !strings.Contains(r, "trim=start=3:end=4,setpts=PTS-STARTPTS[v0]") {
		t.Errorf("reversed order not preserved: %s", r)
	}
	if f == r {
		t.Error("reordered input must produce a different graph")
	}
}

func TestTrimConcat_Empty(t *testing.T) {
	if got := TrimConcat(nil).String(); got != "" {
		t.Errorf("expected empty graph, got %q", got)
	}
}
