package pipeline

import (
	"context"
	"log/slog"

	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/transcribe"
)

// GenerateSubtitles transcribes the video's audio track and stores the
// resulting timed segments on the record. With no transcription backend
// configured, or when extraction or transcription fails, deterministic
// placeholder segments are produced instead so the edit flow keeps
// working. The temporary audio file is removed on every path.
func (p *Pipeline) GenerateSubtitles(ctx context.Context, videoID, language string) ([]subtitle.Segment, error) {
	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	duration := v.Metadata.Duration
	if duration <= 0 {
		duration = p.engine.ProbeOrDefault(ctx, p.store.UploadPath(v.Filename)).Duration
	}
	style := subtitle.DefaultStyle()

	segs := p.transcribeSegments(ctx, v.Filename, v.ID, language, duration, style)
	if len(segs) == 0 {
		segs = transcribe.MockSegments(duration, style)
	}

	v.Subtitles = segs
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		return nil, err
	}

	p.logger.Info("generated subtitles",
		slog.String("video_id", videoID),
		slog.String("language", language),
		slog.Int("segments", len(segs)),
	)

	return segs, nil
}

// transcribeSegments runs the real speech-to-text flow. A nil result means
// the caller should fall back to placeholders.
func (p *Pipeline) transcribeSegments(ctx context.Context, filename, videoID, language string, duration float64, style subtitle.Style) []subtitle.Segment {
	if p.transcriber == nil {
		return nil
	}

	src := p.store.UploadPath(filename)
	audioPath := p.store.TempPath(videoID + "_audio.mp3")
	defer func() {
		_ = p.store.CleanupTemp(ctx, []string{audioPath})
	}()

	if err := p.engine.ExtractAudio(ctx, src, audioPath); err != nil {
		p.logger.Warn("audio extraction failed, using placeholder subtitles",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	res, err := p.transcriber.Transcribe(ctx, audioPath, language)
	if err != nil {
		p.logger.Warn("transcription failed, using placeholder subtitles",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	return transcribe.Subtitles(res, duration, style)
}

// UpdateSubtitles replaces the video's subtitle segments after validating
// each one.
func (p *Pipeline) UpdateSubtitles(ctx context.Context, videoID string, segs []subtitle.Segment) error {
	for _, seg := range segs {
		if err := seg.Validate(); err != nil {
			return err
		}
	}

	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return err
	}

	v.Subtitles = segs
	v.Touch()
	return p.repo.Save(ctx, v)
}
