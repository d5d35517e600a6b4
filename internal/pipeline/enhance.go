package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/reelcut/reelcut-api/internal/filtergraph"
	"github.com/reelcut/reelcut-api/internal/video"
)

// EnhanceAudio re-encodes the audio track through a cleanup chain while
// copying the video stream untouched. Denoise applies a highpass/lowpass
// pair; normalize applies EBU R128 loudness normalization. With both off
// the audio passes through unchanged but is still re-encoded.
func (p *Pipeline) EnhanceAudio(ctx context.Context, videoID string, denoise, normalize bool) error {
	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return err
	}

	src := p.store.UploadPath(v.Filename)
	chain := filtergraph.EnhanceAudio(denoise, normalize)
	outName := artifactName(v.ID, "enhanced")
	output := p.store.UploadPath(outName)

	p.markStatus(ctx, v, video.StatusProcessing)

	if err := p.engine.FilterAudio(ctx, src, chain.String(), output); err != nil {
		_ = os.Remove(output)
		p.markStatus(ctx, v, video.StatusError)
		return fmt.Errorf("pipeline: enhance audio: %w", err)
	}

	v.Filename = outName
	v.Status = video.StatusReady
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		return err
	}

	p.logger.Info("enhanced audio",
		slog.String("video_id", videoID),
		slog.Bool("denoise", denoise),
		slog.Bool("normalize", normalize),
	)

	return nil
}
