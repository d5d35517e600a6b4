package subtitle

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Block is a rendered subtitle bitmap. The canvas spans the full video
// width so the styled box inside it is already horizontally centered; only
// vertical placement remains for the compositor.
type Block struct {
	Image  *image.RGBA
	Width  int
	Height int
}

// boxAlpha is the background box opacity (200/255, about 78%).
const boxAlpha = 200

// Y returns the vertical placement of the block for a video of the given
// height: a bottom margin of max(60, 8% of height). A block taller than the
// space above the margin is pinned to the top of the frame.
func (b *Block) Y(videoHeight int) int {
	bottomMargin := 60
	if m := int(math.Round(float64(videoHeight) * 0.08)); m > bottomMargin {
		bottomMargin = m
	}

	y := videoHeight - b.Height - bottomMargin
	if y < 0 {
		y = 0
	}
	return y
}

// EncodePNG writes the block's bitmap as PNG.
func (b *Block) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.Image)
}

// Rasterizer renders subtitle segments to bitmaps using an injected glyph
// resolver.
type Rasterizer struct {
	resolver GlyphResolver
}

// NewRasterizer creates a Rasterizer.
func NewRasterizer(resolver GlyphResolver) *Rasterizer {
	return &Rasterizer{resolver: resolver}
}

// Render rasterizes text with the given style onto a full-video-width
// canvas: a semi-transparent box sized to the wrapped text, each line drawn
// with a 1px four-directional outline pass and then its fill color, centered
// within the box. Returns ErrNoGlyphSource (wrapped) when no glyph source
// resolves; callers degrade to the engine's drawtext fallback.
func (r *Rasterizer) Render(text string, style Style, videoWidth, videoHeight int) (*Block, error) {
	fontSize, maxTextWidth := layoutBudget(videoWidth, videoHeight)

	face, err := r.resolver.Resolve(Classify(text), float64(fontSize))
	if err != nil {
		return nil, fmt.Errorf("render subtitle: %w", err)
	}
	defer face.Close()

	lines := wrapText(text, face, maxTextWidth)

	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()
	lineSpacing := int(float64(lineHeight) * 0.3)

	maxLineWidth := 0
	for _, line := range lines {
		if w := measure(face, line); w > maxLineWidth {
			maxLineWidth = w
		}
	}

	paddingX := fontSize / 2
	if paddingX < 20 {
		paddingX = 20
	}
	paddingY := fontSize / 3
	if paddingY < 12 {
		paddingY = 12
	}

	totalTextHeight := lineHeight*len(lines) + lineSpacing*(len(lines)-1)
	boxWidth := maxLineWidth + paddingX*2
	boxHeight := totalTextHeight + paddingY*2

	imgHeight := boxHeight + 10
	img := image.NewRGBA(image.Rect(0, 0, videoWidth, imgHeight))

	boxX := (videoWidth - boxWidth) / 2
	boxY := 5

	// Background box first, then text over it.
	boxColor := color.RGBA{A: boxAlpha}
	draw.Draw(img,
		image.Rect(boxX, boxY, boxX+boxWidth, boxY+boxHeight),
		image.NewUniform(boxColor), image.Point{}, draw.Over)

	outlineColor := parseHexColor(style.OutlineColor)
	textColor := parseHexColor(style.FontColor)

	currentY := boxY + paddingY
	for _, line := range lines {
		lineWidth := measure(face, line)
		textX := boxX + (boxWidth-lineWidth)/2
		baseline := currentY + metrics.Ascent.Ceil()

		for _, off := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			drawString(img, face, textX+off[0], baseline+off[1], outlineColor, line)
		}
		drawString(img, face, textX, baseline, textColor, line)

		currentY += lineHeight + lineSpacing
	}

	return &Block{Image: img, Width: videoWidth, Height: imgHeight}, nil
}

// layoutBudget returns the base font size and maximum text width for a
// canvas: landscape frames use 2.2% of width (min 36px) and an 85% width
// budget, portrait frames 2.8% of height (min 28px) and a 90% budget.
func layoutBudget(videoWidth, videoHeight int) (fontSize, maxTextWidth int) {
	if videoWidth >= videoHeight {
		fontSize = int(math.Round(float64(videoWidth) * 0.022))
		if fontSize < 36 {
			fontSize = 36
		}
		maxTextWidth = int(float64(videoWidth) * 0.85)
		return fontSize, maxTextWidth
	}

	fontSize = int(math.Round(float64(videoHeight) * 0.028))
	if fontSize < 28 {
		fontSize = 28
	}
	maxTextWidth = int(float64(videoWidth) * 0.90)
	return fontSize, maxTextWidth
}

// wrapText greedily packs whitespace-delimited words into lines measured
// against the glyph source. A single word wider than the budget stays on
// its own line unsplit. Always returns at least one line.
func wrapText(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)

	var lines []string
	var current []string

	for _, word := range words {
		candidate := strings.Join(append(current, word), " ")
		if measure(face, candidate) <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// measure returns the advance width of s in whole pixels.
func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawString draws s at the given baseline origin in the given color.
func drawString(dst *image.RGBA, face font.Face, x, y int, col color.RGBA, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
