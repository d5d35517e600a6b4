// Package silence provides silence interval detection over media files
// using the ffmpeg silencedetect audio filter.
package silence

import (
	"context"

	"github.com/reelcut/reelcut-api/internal/interval"
)

// Options configures silence detection.
type Options struct {
	// NoiseFloorDB is the volume threshold in dBFS below which audio
	// is considered silence. Default: -40 dBFS.
	NoiseFloorDB float64

	// MinDuration is the minimum silence length in seconds to report.
	// Default: 0.5 seconds.
	MinDuration float64
}

// DefaultOptions returns the default detection options.
func DefaultOptions() Options {
	return Options{
		NoiseFloorDB: -40,
		MinDuration:  0.5,
	}
}

// Detector finds silent portions of a media file's audio track.
type Detector interface {
	// Detect returns the silence intervals of the file at path, ordered by
	// start time and non-overlapping. A file with no silence yields an
	// empty slice and no error. Detect returns ErrDetectUnavailable
	// (wrapped) only when the analysis process cannot be launched at all.
	Detect(ctx context.Context, path string, opts Options) ([]interval.Interval, error)
}
