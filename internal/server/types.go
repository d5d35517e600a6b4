// Package server provides the HTTP server for the reelcut API.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

import "github.com/reelcut/reelcut-api/internal/subtitle"

// TrimSilenceRequest is the HTTP request body for the trim operation.
// Omitted fields take the pipeline defaults.
type TrimSilenceRequest struct {
	// SilenceThreshold is the silence floor in dBFS (at or below zero).
	SilenceThreshold float64 `json:"silence_threshold" validate:"omitempty,lte=0"`
	// MinSilenceDuration is the minimum silence length in seconds to cut.
	MinSilenceDuration float64 `json:"min_silence_duration" validate:"omitempty,gt=0"`
	// Padding is the silence kept on each side of a cut, in seconds.
	Padding float64 `json:"padding" validate:"omitempty,gte=0,lte=5"`
}

// TrimSilenceResponse reports the trim outcome.
type TrimSilenceResponse struct {
	OriginalDuration float64 `json:"original_duration"`
	NewDuration      float64 `json:"new_duration"`
	SegmentsRemoved  int     `json:"segments_removed"`
}

// TransformLandscapeRequest is the HTTP request body for reframing.
type TransformLandscapeRequest struct {
	// TargetWidth and TargetHeight are the landscape canvas dimensions.
	TargetWidth  int `json:"target_width" validate:"omitempty,min=2,max=4096"`
	TargetHeight int `json:"target_height" validate:"omitempty,min=2,max=4096"`
	// BackgroundBlur selects the blurred-copy background; defaults to true.
	BackgroundBlur *bool `json:"background_blur"`
}

// TransformLandscapeResponse reports the dimensions before and after.
type TransformLandscapeResponse struct {
	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`
	NewWidth       int `json:"new_width"`
	NewHeight      int `json:"new_height"`
}

// GenerateSubtitlesRequest is the HTTP request body for transcription.
type GenerateSubtitlesRequest struct {
	// Language is the spoken language hint, e.g. "en" or "hi".
	Language string `json:"language" validate:"omitempty,min=2,max=8"`
}

// UpdateSubtitlesRequest replaces a video's subtitle segments.
type UpdateSubtitlesRequest struct {
	Subtitles []SubtitleSegmentDTO `json:"subtitles" validate:"required,dive"`
}

// SubtitleSegmentDTO is one timed subtitle in API form.
type SubtitleSegmentDTO struct {
	ID        string         `json:"id"`
	StartTime float64        `json:"start_time" validate:"gte=0"`
	EndTime   float64        `json:"end_time" validate:"required,gtfield=StartTime"`
	Text      string         `json:"text" validate:"required"`
	Style     subtitle.Style `json:"style"`
}

// SubtitlesResponse returns a video's subtitle segments.
type SubtitlesResponse struct {
	VideoID   string             `json:"video_id"`
	Subtitles []subtitle.Segment `json:"subtitles"`
}

// ExportResponse reports the exported artifact path.
type ExportResponse struct {
	VideoID string `json:"video_id"`
	Path    string `json:"path"`
	Status  string `json:"status"`
}

// EnhanceAudioRequest is the HTTP request body for audio enhancement.
// Both switches default to true.
type EnhanceAudioRequest struct {
	Denoise   *bool `json:"denoise"`
	Normalize *bool `json:"normalize"`
}

// ViralClipsRequest is the HTTP request body for clip extraction.
type ViralClipsRequest struct {
	Count    int     `json:"count" validate:"omitempty,min=1,max=10"`
	Duration float64 `json:"duration" validate:"omitempty,gt=0,lte=300"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
