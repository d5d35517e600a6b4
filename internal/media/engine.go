// Package media provides the external media engine boundary: ffmpeg
// invocation for filter graphs and ffprobe metadata extraction.
package media

import (
	"context"
	"errors"
)

// Static errors for media operations.
var (
	// ErrProbeFailed is returned when metadata extraction fails. Callers
	// that can degrade use ProbeOrDefault instead of failing the operation.
	ErrProbeFailed = errors.New("media: metadata probe failed")
	// ErrNoInputs is returned when an engine run is requested without inputs.
	ErrNoInputs = errors.New("media: no input paths provided")
)

// Metadata describes a media file.
type Metadata struct {
	Duration  float64 `json:"duration"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FPS       float64 `json:"fps"`
	FileSize  int64   `json:"file_size"`
	Container string  `json:"format"`
}

// IsPortrait reports whether the probed dimensions are taller than wide.
func (m Metadata) IsPortrait() bool {
	return m.Height > m.Width
}

// DefaultMetadata is the conservative fallback used when probing fails:
// a 30 second clip of unknown dimensions.
func DefaultMetadata() Metadata {
	return Metadata{Duration: 30, FPS: 30, Container: "unknown"}
}

// Engine is the boundary to the external media processing engine. Each call
// is a single blocking invocation that either produces the output file and
// returns nil, or fails with the engine's diagnostics attached.
type Engine interface {
	// Probe extracts file metadata. Returns ErrProbeFailed (wrapped) when
	// the probe cannot run or its output is unusable.
	Probe(ctx context.Context, path string) (Metadata, error)

	// ProbeOrDefault extracts metadata, degrading to DefaultMetadata on
	// any probe failure.
	ProbeOrDefault(ctx context.Context, path string) Metadata

	// Render runs a filter graph over the inputs and encodes the mapped
	// streams to output with the fixed libx264/aac codec pair. filterGraph
	// may be empty for a plain re-encode. maps lists the -map selectors in
	// order, e.g. "[outv]", "0:a?".
	Render(ctx context.Context, inputs []string, filterGraph string, maps []string, output string) error

	// FilterAudio re-encodes only the audio track through the given filter
	// chain, copying the video stream untouched.
	FilterAudio(ctx context.Context, input, audioFilter, output string) error

	// ExtractAudio pulls the audio track to a mono 16 kHz mp3, the format
	// the transcription collaborator expects.
	ExtractAudio(ctx context.Context, input, output string) error
}
