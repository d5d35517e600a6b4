package silence

import (
	"context"
	"errors"
	"testing"
)

func TestParseSilenceOutput(t *testing.T) {
	output := `
[silencedetect @ 0x55d1] silence_start: 5.2
[silencedetect @ 0x55d1] silence_end: 7.8 | silence_duration: 2.6
frame= 1000 fps=250 q=-0.0 size=N/A
[silencedetect @ 0x55d1] silence_start: 12.0
[silencedetect @ 0x55d1] silence_end: 13.5 | silence_duration: 1.5
`

	intervals := parseSilenceOutput(output)
	if len(intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d: %+v", len(intervals), intervals)
	}
	if intervals[0].Start != 5.2 || intervals[0].End != 7.8 {
		t.Errorf("interval 0: got %+v", intervals[0])
	}
	if intervals[1].Start != 12.0 || intervals[1].End != 13.5 {
		t.Errorf("interval 1: got %+v", intervals[1])
	}

	// Intervals must come out in stream order.
	for i := 1; i < len(intervals); i++ {
		if intervals[i].Start < intervals[i-1].End {
			t.Errorf("intervals out of order: %+v", intervals)
		}
	}
}

func TestParseSilenceOutput_EndWithoutStart(t *testing.T) {
	output := `
[silencedetect @ 0x55d1] silence_end: 7.8 | silence_duration: 2.6
[silencedetect @ 0x55d1] silence_start: 10.0
[silencedetect @ 0x55d1] silence_end: 11.0 | silence_duration: 1.0
`

	intervals := parseSilenceOutput(output)
	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d: %+v", len(intervals), intervals)
	}
	if intervals[0].Start != 10.0 || intervals[0].End != 11.0 {
		t.Errorf("got %+v", intervals[0])
	}
}

func TestParseSilenceOutput_UnterminatedStart(t *testing.T) {
	output := `
[silencedetect @ 0x55d1] silence_start: 3.0
[silencedetect @ 0x55d1] silence_end: 4.0 | silence_duration: 1.0
[silencedetect @ 0x55d1] silence_start: 9.0
`

	intervals := parseSilenceOutput(output)
	if len(intervals) != 1 {
		t.Fatalf("unterminated start must be dropped, got %+v", intervals)
	}
}

func TestParseSilenceOutput_MalformedLines(t *testing.T) {
	output := `
silence_start: not-a-number
silence_start: 1.0
silence_end: also-bad
silence_end: 2.0
garbage line with no markers
`

	intervals := parseSilenceOutput(output)
	if len(intervals) != 1 {
		t.Fatalf("expected 1 interval, got %d: %+v", len(intervals), intervals)
	}
	if intervals[0].Start != 1.0 || intervals[0].End != 2.0 {
		t.Errorf("got %+v", intervals[0])
	}
}

func TestParseSilenceOutput_Empty(t *testing.T) {
	if got := parseSilenceOutput(""); len(got) != 0 {
		t.Errorf("expected no intervals, got %+v", got)
	}
}

func TestDetect_LaunchFailure(t *testing.T) {
	d := NewFFmpegDetector("/nonexistent/ffmpeg-binary")

	_, err := d.Detect(context.Background(), "input.mp4", DefaultOptions())
	if !errors.Is(err, ErrDetectUnavailable) {
		t.Fatalf("expected ErrDetectUnavailable, got %v", err)
	}
}
