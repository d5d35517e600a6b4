package transcribe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reelcut/reelcut-api/internal/subtitle"
)

var sentenceBoundary = regexp.MustCompile(`(?:[.!?])\s+`)

// Subtitles converts a recognition result into timed subtitle segments.
// When the backend returned per-segment timings those are used directly.
// Otherwise the full transcript is chunked into short phrases and timings
// are spread across the video duration proportionally to word count.
func Subtitles(res Result, videoDuration float64, style subtitle.Style) []subtitle.Segment {
	if len(res.Segments) > 0 {
		out := make([]subtitle.Segment, 0, len(res.Segments))
		for _, seg := range res.Segments {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			out = append(out, subtitle.Segment{
				ID:        fmt.Sprintf("seg-%d", len(out)+1),
				StartTime: seg.Start,
				EndTime:   seg.End,
				Text:      text,
				Style:     style,
			})
		}
		return out
	}

	return chunkTranscript(strings.TrimSpace(res.Text), videoDuration, style)
}

// chunkTranscript splits a flat transcript into phrases and assigns
// timings from word counts. Each phrase lasts at least 1.5 seconds and
// at most half the video, and no segment runs past the end of the video.
func chunkTranscript(text string, videoDuration float64, style subtitle.Style) []subtitle.Segment {
	if text == "" {
		return nil
	}

	chunks := splitChunks(text)

	words := strings.Fields(text)
	secondsPerWord := 0.5
	if len(words) > 0 {
		secondsPerWord = videoDuration / float64(len(words))
	}

	var out []subtitle.Segment
	current := 0.3
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		wordCount := float64(len(strings.Fields(chunk)))
		duration := wordCount * secondsPerWord
		if duration < 1.5 {
			duration = 1.5
		}
		if half := videoDuration / 2; duration > half {
			duration = half
		}

		if current+duration > videoDuration {
			duration = videoDuration - current - 0.5
			if duration <= 0 {
				break
			}
		}

		out = append(out, subtitle.Segment{
			ID:        fmt.Sprintf("seg-%d", len(out)+1),
			StartTime: current,
			EndTime:   current + duration,
			Text:      chunk,
			Style:     style,
		})
		current += duration + 0.3
	}

	return out
}

// splitChunks breaks text at sentence boundaries, falling back to groups
// of six words (or a trailing comma) when the text is one long run.
func splitChunks(text string) []string {
	if parts := splitSentences(text); len(parts) > 1 {
		return parts
	}

	var chunks []string
	var current []string
	for _, word := range strings.Fields(text) {
		current = append(current, word)
		if len(current) >= 6 || strings.HasSuffix(word, ",") {
			chunks = append(chunks, strings.TrimSuffix(strings.Join(current, " "), ","))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// splitSentences cuts at whitespace following .!? keeping the
// punctuation with the preceding sentence.
func splitSentences(text string) []string {
	idxs := sentenceBoundary.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return []string{text}
	}

	var parts []string
	prev := 0
	for _, idx := range idxs {
		parts = append(parts, text[prev:idx[0]+1])
		prev = idx[1]
	}
	if prev < len(text) {
		parts = append(parts, text[prev:])
	}
	return parts
}

// MockSegments produces deterministic placeholder subtitles used when no
// transcription backend is configured. Timings scale with the video
// duration the way real captions would.
func MockSegments(videoDuration float64, style subtitle.Style) []subtitle.Segment {
	out := []subtitle.Segment{
		{
			ID:        "seg-1",
			StartTime: 1.0,
			EndTime:   min(videoDuration*0.3, 8.0),
			Text:      "This is the first subtitle segment.",
			Style:     style,
		},
		{
			ID:        "seg-2",
			StartTime: max(videoDuration*0.35, 3.0),
			EndTime:   min(videoDuration*0.6, 15.0),
			Text:      "This is the second subtitle segment.",
			Style:     style,
		},
	}

	if videoDuration > 10 {
		out = append(out, subtitle.Segment{
			ID:        "seg-3",
			StartTime: max(videoDuration*0.65, 8.0),
			EndTime:   videoDuration - 1.0,
			Text:      "This is the third subtitle segment.",
			Style:     style,
		})
	}

	return out
}
