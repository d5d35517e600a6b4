// Package subtitle provides subtitle segment types, script-aware glyph
// source resolution, and rasterization of styled subtitle bitmaps.
package subtitle

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

// Vertical anchor positions for a subtitle block.
const (
	PositionTop    = "top"
	PositionCenter = "center"
	PositionBottom = "bottom"
)

// Style is the immutable styling applied to one segment at render time.
type Style struct {
	FontFamily   string `json:"font_family"`
	FontSize     int    `json:"font_size"`
	FontColor    string `json:"font_color"`
	OutlineColor string `json:"outline_color"`
	OutlineWidth int    `json:"outline_width"`
	Position     string `json:"position"` // top, center, bottom
	Bold         bool   `json:"bold"`
	Italic       bool   `json:"italic"`
}

// DefaultStyle returns the default subtitle styling.
func DefaultStyle() Style {
	return Style{
		FontFamily:   "Arial",
		FontSize:     24,
		FontColor:    "#FFFFFF",
		OutlineColor: "#000000",
		OutlineWidth: 2,
		Position:     PositionBottom,
	}
}

// FillDefaults returns the style with every unset field taken from
// DefaultStyle, keeping the fields the caller did set. Zero-valued fields
// are considered unset, so an outline cannot be disabled by width alone;
// use a transparent outline color for that.
func (s Style) FillDefaults() Style {
	d := DefaultStyle()
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	if s.FontColor == "" {
		s.FontColor = d.FontColor
	}
	if s.OutlineColor == "" {
		s.OutlineColor = d.OutlineColor
	}
	if s.OutlineWidth == 0 {
		s.OutlineWidth = d.OutlineWidth
	}
	if s.Position == "" {
		s.Position = d.Position
	}
	return s
}

// Segment is a single timed subtitle. The pipeline only reads segments;
// edits produce new values.
type Segment struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
	Style     Style   `json:"style"`
}

// ErrInvalidSegment is returned when a segment's timing or text is unusable.
var ErrInvalidSegment = errors.New("subtitle: segment must have end > start and non-empty text")

// Validate checks segment timing and text before rendering.
func (s Segment) Validate() error {
	if s.EndTime <= s.StartTime || s.Text == "" {
		return fmt.Errorf("%w: id=%s start=%.3f end=%.3f", ErrInvalidSegment, s.ID, s.StartTime, s.EndTime)
	}
	return nil
}

// parseHexColor converts a #RRGGBB string to an opaque color.
// Unparseable values fall back to white.
func parseHexColor(hex string) color.RGBA {
	if len(hex) == 7 && hex[0] == '#' {
		r, errR := strconv.ParseUint(hex[1:3], 16, 8)
		g, errG := strconv.ParseUint(hex[3:5], 16, 8)
		b, errB := strconv.ParseUint(hex[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
		}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
