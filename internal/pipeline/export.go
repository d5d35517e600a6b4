package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/reelcut/reelcut-api/internal/filtergraph"
	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/video"
)

// ExportWithSubtitles burns the video's subtitle segments into the frames
// and writes the final artifact to the exports directory. Each segment is
// rasterized to a bitmap composited as a timed overlay layer; segments
// whose glyphs cannot be resolved degrade to the engine's built-in
// drawtext instead of aborting. The record moves exporting -> exported,
// or to error status on failure. All temporary bitmaps are removed on
// every exit path.
func (p *Pipeline) ExportWithSubtitles(ctx context.Context, videoID string) (string, error) {
	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return "", err
	}

	v.Status = video.StatusExporting
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		return "", err
	}

	src := p.store.UploadPath(v.Filename)
	outName := artifactName(v.ID, "exported")
	output := p.store.ExportPath(outName)

	path, err := p.exportTo(ctx, v, src, output)
	if err != nil {
		v.Status = video.StatusError
		v.Touch()
		if saveErr := p.repo.Save(ctx, v); saveErr != nil {
			p.logger.Error("failed to record export error",
				slog.String("video_id", videoID),
				slog.String("error", saveErr.Error()),
			)
		}
		return "", err
	}

	v.Status = video.StatusExported
	v.ExportedPath = path
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		return "", err
	}

	p.logger.Info("exported video",
		slog.String("video_id", videoID),
		slog.Int("subtitles", len(v.Subtitles)),
		slog.String("path", path),
	)

	return path, nil
}

// exportTo runs the composition itself so the caller owns the status
// bookkeeping for both outcomes.
func (p *Pipeline) exportTo(ctx context.Context, v *video.Video, src, output string) (string, error) {
	if len(v.Subtitles) == 0 {
		if err := p.engine.Render(ctx, []string{src}, "", []string{"0:v", "0:a?"}, output); err != nil {
			_ = os.Remove(output)
			return "", fmt.Errorf("pipeline: export render: %w", err)
		}
		return output, nil
	}

	videoW, videoH := v.Metadata.Width, v.Metadata.Height
	if videoW == 0 || videoH == 0 {
		md := p.engine.ProbeOrDefault(ctx, src)
		videoW, videoH = md.Width, md.Height
	}
	if videoW == 0 || videoH == 0 {
		videoW, videoH = 1920, 1080
	}

	inputs := []string{src}
	var layers []filtergraph.Layer
	var temps []string
	defer func() {
		_ = p.store.CleanupTemp(ctx, temps)
	}()

	for _, seg := range v.Subtitles {
		if err := seg.Validate(); err != nil {
			p.logger.Warn("skipping unusable subtitle segment",
				slog.String("video_id", v.ID),
				slog.String("segment_id", seg.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		block, err := p.rasterizer.Render(seg.Text, seg.Style, videoW, videoH)
		if err != nil {
			if !errors.Is(err, subtitle.ErrNoGlyphSource) {
				return "", fmt.Errorf("pipeline: rasterize segment %s: %w", seg.ID, err)
			}
			p.logger.Warn("no glyph source for segment, using drawtext fallback",
				slog.String("video_id", v.ID),
				slog.String("segment_id", seg.ID),
			)
			layers = append(layers, drawTextLayer(seg))
			continue
		}

		var buf bytes.Buffer
		if err := block.EncodePNG(&buf); err != nil {
			return "", fmt.Errorf("pipeline: encode segment %s: %w", seg.ID, err)
		}
		path, err := p.store.SaveTemp(ctx, seg.ID+".png", &buf)
		if err != nil {
			return "", fmt.Errorf("pipeline: save segment bitmap: %w", err)
		}
		temps = append(temps, path)

		inputs = append(inputs, path)
		layers = append(layers, filtergraph.Layer{
			Input: len(inputs) - 1,
			Y:     block.Y(videoH),
			Start: seg.StartTime,
			End:   seg.EndTime,
		})
	}

	graph := filtergraph.Compose(layers)
	maps := []string{"0:v", "0:a?"}
	if len(layers) > 0 {
		maps[0] = "[outv]"
	}

	if err := p.engine.Render(ctx, inputs, graph.String(), maps, output); err != nil {
		_ = os.Remove(output)
		return "", fmt.Errorf("pipeline: export render: %w", err)
	}

	return output, nil
}

// drawTextLayer converts a subtitle segment into the engine's built-in
// text layer, used when no bitmap could be rendered for it.
func drawTextLayer(seg subtitle.Segment) filtergraph.Layer {
	return filtergraph.Layer{
		Start:        seg.StartTime,
		End:          seg.EndTime,
		Text:         seg.Text,
		FontSize:     seg.Style.FontSize,
		FontColor:    seg.Style.FontColor,
		OutlineColor: seg.Style.OutlineColor,
		OutlineWidth: seg.Style.OutlineWidth,
		Anchor:       seg.Style.Position,
	}
}
