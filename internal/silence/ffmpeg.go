package silence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/reelcut/reelcut-api/internal/interval"
)

// ErrDetectUnavailable is returned when the ffmpeg process cannot be
// launched. A launched process that reports no silence is not an error.
var ErrDetectUnavailable = errors.New("silence: detection process could not be started")

// FFmpegDetector implements Detector using the ffmpeg CLI silencedetect filter.
type FFmpegDetector struct {
	ffmpegPath string
}

// NewFFmpegDetector creates a new FFmpegDetector.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewFFmpegDetector(ffmpegPath string) *FFmpegDetector {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpegDetector{ffmpegPath: ffmpegPath}
}

// Detect implements Detector.Detect. ffmpeg writes silencedetect diagnostics
// to stderr; the process itself exits non-zero for null output, so its exit
// status is ignored and only a failed launch is reported.
func (d *FFmpegDetector) Detect(ctx context.Context, path string, opts Options) ([]interval.Interval, error) {
	filter := fmt.Sprintf("silencedetect=noise=%.1fdB:d=%.3f", opts.NoiseFloorDB, opts.MinDuration)

	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-i", path,
		"-af", filter,
		"-f", "null",
		"-hide_banner",
		"-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetectUnavailable, err)
	}
	_ = cmd.Wait()

	return parseSilenceOutput(stderr.String()), nil
}

var (
	startRe = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	endRe   = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
)

// parseSilenceOutput scans silencedetect diagnostics line by line. A start
// marker records a pending start; the next end marker emits the interval.
// An end with no pending start is ignored, an unterminated start is dropped,
// and unparseable numbers skip only their own line. Emission order follows
// the stream, so well-formed output yields ordered, non-overlapping intervals.
func parseSilenceOutput(output string) []interval.Interval {
	var intervals []interval.Interval

	var pendingStart float64
	hasStart := false

	for _, line := range strings.Split(output, "\n") {
		if m := startRe.FindStringSubmatch(line); len(m) > 1 {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			pendingStart = val
			hasStart = true
			continue
		}

		if m := endRe.FindStringSubmatch(line); len(m) > 1 && hasStart {
			val, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if val > pendingStart {
				intervals = append(intervals, interval.Interval{Start: pendingStart, End: val})
			}
			hasStart = false
		}
	}

	return intervals
}

// Verify interface implementation at compile time.
var _ Detector = (*FFmpegDetector)(nil)
