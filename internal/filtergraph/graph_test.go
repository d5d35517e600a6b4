package filtergraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphSerialization(t *testing.T) {
	g := &Graph{}
	g.Add(NewChain(
		[]string{"0:v"}, []string{"scaled"},
		NewFilter("scale", Int("", 606), Int("", 1080)),
	))
	g.Add(NewChain(
		nil, []string{"bg"},
		NewFilter("color", Expr("", "black"), Expr("size", "1920x1080")),
	))
	g.Add(NewChain(
		[]string{"bg", "scaled"}, []string{"outv"},
		NewFilter("overlay", Expr("", "(W-w)/2"), Expr("", "(H-h)/2")),
	))

	want := "[0:v]scale=606:1080[scaled];" +
		"color=black:size=1920x1080[bg];" +
		"[bg][scaled]overlay=(W-w)/2:(H-h)/2[outv]"
	assert.Equal(t, want, g.String())
}

func TestChainString(t *testing.T) {
	c := NewChain(nil, nil,
		NewFilter("highpass", Int("f", 100)),
		NewFilter("lowpass", Int("f", 8000)),
	)
	assert.Equal(t, "highpass=f=100,lowpass=f=8000", c.String())
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"it's 5:00", `it\'s 5\:00`},
		{"a,b;c", `a\,b\;c`},
		{"[v0]=x", `\[v0\]\=x`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), "input %q", tt.in)
	}
}

func TestEscape_TextCannotInjectChains(t *testing.T) {
	// A subtitle payload that tries to smuggle in an extra filter chain
	// must come out inert.
	payload := "hello[outv];[0:v]crop=1:1"
	escaped := Escape(payload)

	assert.NotContains(t, escaped, "[outv]")
	assert.NotContains(t, escaped, ";[")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(0))
	assert.Equal(t, "5.1", FormatFloat(5.1))
	assert.Equal(t, "15", FormatFloat(15))
	assert.Equal(t, "9.9", FormatFloat(9.9))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "0xFFFFFF", HexColor("#FFFFFF"))
	assert.Equal(t, "0x000000", HexColor("#000000"))
	assert.Equal(t, "0xFFFFFF", HexColor(""))
}

func TestEnhanceAudio(t *testing.T) {
	assert.Equal(t,
		"highpass=f=100,lowpass=f=8000,loudnorm=I=-16:TP=-1.5:LRA=11",
		EnhanceAudio(true, true).String(),
	)
	assert.Equal(t, "loudnorm=I=-16:TP=-1.5:LRA=11", EnhanceAudio(false, true).String())
	assert.Equal(t, "anull", EnhanceAudio(false, false).String())
}

func TestCompose_OverlayLayers(t *testing.T) {
	layers := []Layer{
		{Input: 1, Y: 900, Start: 1, End: 4.5},
		{Input: 2, Y: 880, Start: 5, End: 9},
	}

	g := Compose(layers)
	got := g.String()

	want := `[0:v][1:v]overlay=x=(W-w)/2:y=900:enable=between(t\,1\,4.5)[v1];` +
		`[v1][2:v]overlay=x=(W-w)/2:y=880:enable=between(t\,5\,9)[outv]`
	assert.Equal(t, want, got)
}

func TestCompose_DrawTextFallback(t *testing.T) {
	layers := []Layer{
		{
			Text:         "it's a test: one, two",
			FontSize:     40,
			FontColor:    "#FFFFFF",
			OutlineColor: "#000000",
			OutlineWidth: 2,
			Anchor:       "bottom",
			Start:        0.5,
			End:          2,
		},
	}

	got := Compose(layers).String()

	if !strings.HasPrefix(got, "[0:v]drawtext=text=") {
		t.Fatalf("expected drawtext chain, got %q", got)
	}
	// User text must be escaped, never emitted raw.
	assert.Contains(t, got, `it\'s a test\: one\, two`)
	assert.Contains(t, got, "fontcolor=0xFFFFFF")
	assert.Contains(t, got, "y=h*0.85-text_h")
	assert.Contains(t, got, `enable=between(t\,0.5\,2)`)
	assert.True(t, strings.HasSuffix(got, "[outv]"))
}

func TestCompose_Empty(t *testing.T) {
	assert.Equal(t, "", Compose(nil).String())
}
