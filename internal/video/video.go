// Package video provides the Video record aggregate tracked across pipeline
// operations, plus repository ports for persistence.
package video

import (
	"time"

	"github.com/reelcut/reelcut-api/internal/media"
	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/video/id"
)

// Status represents the lifecycle state of a video record.
type Status string

const (
	// StatusUploaded indicates the source file was stored and probed.
	StatusUploaded Status = "uploaded"
	// StatusProcessing indicates a transform operation is running.
	StatusProcessing Status = "processing"
	// StatusReady indicates the video is ready for further edits.
	StatusReady Status = "ready"
	// StatusExporting indicates a subtitle export is running.
	StatusExporting Status = "exporting"
	// StatusExported indicates the final artifact was produced.
	StatusExported Status = "exported"
	// StatusError indicates the last operation failed.
	StatusError Status = "error"
)

// Video is the record a pipeline operation reads and updates. Each
// successful operation points Filename at a new artifact; earlier files are
// never rewritten in place.
type Video struct {
	// ID is the unique identifier for this video.
	ID string `json:"id"`
	// Filename is the current working artifact file name.
	Filename string `json:"filename"`
	// OriginalFilename is the name the file was uploaded with.
	OriginalFilename string `json:"original_filename"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// Metadata holds the probed file properties.
	Metadata media.Metadata `json:"metadata"`
	// Subtitles is the ordered subtitle segment list supplied by the caller.
	Subtitles []subtitle.Segment `json:"subtitles,omitempty"`
	// ExportedPath is the path of the last exported artifact, if any.
	ExportedPath string `json:"exported_path,omitempty"`
	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a Video record with a generated ID in uploaded status.
func New(filename, originalFilename string, md media.Metadata) *Video {
	now := time.Now()
	return &Video{
		ID:               id.Generate(),
		Filename:         filename,
		OriginalFilename: originalFilename,
		Status:           StatusUploaded,
		Metadata:         md,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Clone returns a deep copy of the record so repository callers cannot
// mutate stored state.
func (v *Video) Clone() *Video {
	clone := *v
	if v.Subtitles != nil {
		clone.Subtitles = make([]subtitle.Segment, len(v.Subtitles))
		copy(clone.Subtitles, v.Subtitles)
	}
	return &clone
}

// Touch updates the record's UpdatedAt timestamp.
func (v *Video) Touch() {
	v.UpdatedAt = time.Now()
}
