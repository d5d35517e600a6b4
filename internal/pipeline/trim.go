package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/reelcut/reelcut-api/internal/filtergraph"
	"github.com/reelcut/reelcut-api/internal/segment"
	"github.com/reelcut/reelcut-api/internal/silence"
	"github.com/reelcut/reelcut-api/internal/video"
)

// TrimOptions configures silence-aware trimming. Zero values take the
// corresponding default.
type TrimOptions struct {
	// NoiseFloorDB is the silence threshold in dBFS. Default: -40.
	NoiseFloorDB float64
	// MinSilenceDuration is the minimum silence length in seconds to cut.
	// Default: 0.5.
	MinSilenceDuration float64
	// Padding is the number of seconds of silence kept on each side of a
	// cut so speech is not clipped. Default: 0.1.
	Padding float64
}

// DefaultTrimOptions returns the default trim settings.
func DefaultTrimOptions() TrimOptions {
	return TrimOptions{
		NoiseFloorDB:       -40,
		MinSilenceDuration: 0.5,
		Padding:            0.1,
	}
}

// TrimResult reports the outcome of a trim operation.
type TrimResult struct {
	OriginalDuration float64 `json:"original_duration"`
	NewDuration      float64 `json:"new_duration"`
	SegmentsRemoved  int     `json:"segments_removed"`
}

// TrimSilence removes silent portions from the video, keeping Padding
// seconds around each cut. Zero detected silences or zero keep segments
// are benign no-ops: the original duration is reported unchanged and the
// engine is never invoked.
func (p *Pipeline) TrimSilence(ctx context.Context, videoID string, opts TrimOptions) (TrimResult, error) {
	defaults := DefaultTrimOptions()
	if opts.NoiseFloorDB == 0 {
		opts.NoiseFloorDB = defaults.NoiseFloorDB
	}
	if opts.MinSilenceDuration == 0 {
		opts.MinSilenceDuration = defaults.MinSilenceDuration
	}
	if opts.Padding == 0 {
		opts.Padding = defaults.Padding
	}

	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return TrimResult{}, err
	}

	src := p.store.UploadPath(v.Filename)
	original := v.Metadata.Duration

	silences, err := p.detector.Detect(ctx, src, silence.Options{
		NoiseFloorDB: opts.NoiseFloorDB,
		MinDuration:  opts.MinSilenceDuration,
	})
	if err != nil {
		// A detector that cannot launch is logged and treated as zero
		// silence; anything else aborts the operation.
		if !errors.Is(err, silence.ErrDetectUnavailable) {
			return TrimResult{}, fmt.Errorf("pipeline: detect silence: %w", err)
		}
		p.logger.Warn("silence detection unavailable, skipping trim",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()),
		)
		silences = nil
	}

	result := TrimResult{OriginalDuration: original, NewDuration: original}
	if len(silences) == 0 {
		return result, nil
	}

	keep := segment.Plan(silences, original, opts.Padding)
	if len(keep) == 0 {
		result.SegmentsRemoved = len(silences)
		return result, nil
	}

	graph := filtergraph.TrimConcat(keep)
	outName := artifactName(v.ID, "trimmed")
	output := p.store.UploadPath(outName)

	p.markStatus(ctx, v, video.StatusProcessing)

	if err := p.engine.Render(ctx, []string{src}, graph.String(), []string{"[outv]", "[outa]"}, output); err != nil {
		_ = os.Remove(output)
		p.markStatus(ctx, v, video.StatusError)
		return TrimResult{}, fmt.Errorf("pipeline: trim render: %w", err)
	}

	md := p.engine.ProbeOrDefault(ctx, output)

	v.Filename = outName
	v.Metadata.Duration = md.Duration
	v.Status = video.StatusReady
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		return TrimResult{}, err
	}

	p.logger.Info("trimmed silence",
		slog.String("video_id", videoID),
		slog.Int("segments_removed", len(silences)),
		slog.Float64("original_duration", original),
		slog.Float64("new_duration", md.Duration),
	)

	result.NewDuration = md.Duration
	result.SegmentsRemoved = len(silences)
	return result, nil
}
