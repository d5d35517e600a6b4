package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/reelcut/reelcut-api/internal/media"
	"github.com/reelcut/reelcut-api/internal/pipeline"
	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/video"
)

// maxUploadBytes caps multipart video uploads at 500 MiB.
const maxUploadBytes = 500 << 20

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	pipeline  *pipeline.Pipeline
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(p *pipeline.Pipeline, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		pipeline:  p,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// UploadVideo handles POST /videos requests carrying a multipart file.
func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required", "MISSING_FILE")
		return
	}
	defer func() { _ = file.Close() }()

	v, err := h.pipeline.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error("upload failed",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to store upload", "UPLOAD_FAILED")
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

// ListVideos handles GET /videos requests.
func (h *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.pipeline.List(r.Context())
	if err != nil {
		h.logger.Error("list videos failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to list videos", "LIST_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// GetVideo handles GET /videos/{id} requests.
func (h *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	v, err := h.pipeline.Get(r.Context(), videoID)
	if err != nil {
		h.writeOperationError(w, videoID, err, "get video")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVideo handles DELETE /videos/{id} requests.
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	if err := h.pipeline.Delete(r.Context(), videoID); err != nil {
		h.writeOperationError(w, videoID, err, "delete video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrimSilence handles POST /videos/{id}/trim-silence requests.
func (h *Handlers) TrimSilence(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	var req TrimSilenceRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	res, err := h.pipeline.TrimSilence(r.Context(), videoID, pipeline.TrimOptions{
		NoiseFloorDB:       req.SilenceThreshold,
		MinSilenceDuration: req.MinSilenceDuration,
		Padding:            req.Padding,
	})
	if err != nil {
		h.writeOperationError(w, videoID, err, "trim silence")
		return
	}

	writeJSON(w, http.StatusOK, TrimSilenceResponse{
		OriginalDuration: res.OriginalDuration,
		NewDuration:      res.NewDuration,
		SegmentsRemoved:  res.SegmentsRemoved,
	})
}

// TransformLandscape handles POST /videos/{id}/transform-landscape requests.
func (h *Handlers) TransformLandscape(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	var req TransformLandscapeRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	opts := pipeline.ReframeOptions{
		TargetWidth:    req.TargetWidth,
		TargetHeight:   req.TargetHeight,
		BlurBackground: true,
	}
	if req.BackgroundBlur != nil {
		opts.BlurBackground = *req.BackgroundBlur
	}

	res, err := h.pipeline.TransformToLandscape(r.Context(), videoID, opts)
	if err != nil {
		h.writeOperationError(w, videoID, err, "transform landscape")
		return
	}

	writeJSON(w, http.StatusOK, TransformLandscapeResponse{
		OriginalWidth:  res.OriginalWidth,
		OriginalHeight: res.OriginalHeight,
		NewWidth:       res.NewWidth,
		NewHeight:      res.NewHeight,
	})
}

// GenerateSubtitles handles POST /videos/{id}/subtitles/generate requests.
func (h *Handlers) GenerateSubtitles(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	var req GenerateSubtitlesRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	segs, err := h.pipeline.GenerateSubtitles(r.Context(), videoID, req.Language)
	if err != nil {
		h.writeOperationError(w, videoID, err, "generate subtitles")
		return
	}

	writeJSON(w, http.StatusOK, SubtitlesResponse{VideoID: videoID, Subtitles: segs})
}

// UpdateSubtitles handles PUT /videos/{id}/subtitles requests.
func (h *Handlers) UpdateSubtitles(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	var req UpdateSubtitlesRequest
	if !h.decodeRequired(w, r, &req) {
		return
	}

	segs := make([]subtitle.Segment, 0, len(req.Subtitles))
	for _, dto := range req.Subtitles {
		segs = append(segs, subtitle.Segment{
			ID:        dto.ID,
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
			Text:      dto.Text,
			Style:     dto.Style.FillDefaults(),
		})
	}

	if err := h.pipeline.UpdateSubtitles(r.Context(), videoID, segs); err != nil {
		h.writeOperationError(w, videoID, err, "update subtitles")
		return
	}

	writeJSON(w, http.StatusOK, SubtitlesResponse{VideoID: videoID, Subtitles: segs})
}

// Export handles POST /videos/{id}/export requests.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	path, err := h.pipeline.ExportWithSubtitles(r.Context(), videoID)
	if err != nil {
		h.writeOperationError(w, videoID, err, "export")
		return
	}

	writeJSON(w, http.StatusOK, ExportResponse{
		VideoID: videoID,
		Path:    path,
		Status:  string(video.StatusExported),
	})
}

// EnhanceAudio handles POST /videos/{id}/enhance-audio requests.
func (h *Handlers) EnhanceAudio(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	var req EnhanceAudioRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	denoise, normalize := true, true
	if req.Denoise != nil {
		denoise = *req.Denoise
	}
	if req.Normalize != nil {
		normalize = *req.Normalize
	}

	if err := h.pipeline.EnhanceAudio(r.Context(), videoID, denoise, normalize); err != nil {
		h.writeOperationError(w, videoID, err, "enhance audio")
		return
	}

	v, err := h.pipeline.Get(r.Context(), videoID)
	if err != nil {
		h.writeOperationError(w, videoID, err, "enhance audio")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ViralClips handles POST /videos/{id}/viral-clips requests.
func (h *Handlers) ViralClips(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")

	var req ViralClipsRequest
	if !h.decodeOptional(w, r, &req) {
		return
	}

	clips, err := h.pipeline.ViralClips(r.Context(), videoID, req.Count, req.Duration)
	if err != nil {
		h.writeOperationError(w, videoID, err, "viral clips")
		return
	}

	writeJSON(w, http.StatusOK, clips)
}

// decodeOptional decodes a JSON body that may be absent. An empty body
// leaves the zero value in place; malformed JSON or validation failures
// write the error response and return false.
func (h *Handlers) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return false
	}
	return h.validate(w, dst)
}

// decodeRequired decodes a JSON body that must be present.
func (h *Handlers) decodeRequired(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return false
	}
	return h.validate(w, dst)
}

func (h *Handlers) validate(w http.ResponseWriter, dst any) bool {
	if err := h.validator.Struct(dst); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return false
	}
	return true
}

// writeOperationError maps pipeline errors to HTTP responses.
func (h *Handlers) writeOperationError(w http.ResponseWriter, videoID string, err error, op string) {
	switch {
	case errors.Is(err, video.ErrNotFound):
		writeError(w, http.StatusNotFound, "video not found", "VIDEO_NOT_FOUND")
		return
	case errors.Is(err, subtitle.ErrInvalidSegment):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_SEGMENT")
		return
	}

	h.logger.Error("operation failed",
		slog.String("operation", op),
		slog.String("video_id", videoID),
		slog.String("error", err.Error()),
	)

	var ffErr *media.FFmpegError
	if errors.As(err, &ffErr) {
		writeError(w, http.StatusBadGateway, "media engine failed", "ENGINE_FAILED")
		return
	}

	writeError(w, http.StatusInternalServerError, "operation failed", "OPERATION_FAILED")
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
