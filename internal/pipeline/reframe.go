package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/reelcut/reelcut-api/internal/filtergraph"
	"github.com/reelcut/reelcut-api/internal/video"
)

// ReframeOptions configures the portrait-to-landscape transform. Zero
// target dimensions take the 1920x1080 default.
type ReframeOptions struct {
	TargetWidth    int
	TargetHeight   int
	BlurBackground bool
}

// DefaultReframeOptions returns the default landscape canvas: 1920x1080
// with a blurred background.
func DefaultReframeOptions() ReframeOptions {
	return ReframeOptions{
		TargetWidth:    1920,
		TargetHeight:   1080,
		BlurBackground: true,
	}
}

// ReframeResult reports the dimensions before and after reframing. A
// source that was already landscape reports unchanged dimensions.
type ReframeResult struct {
	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`
	NewWidth       int `json:"new_width"`
	NewHeight      int `json:"new_height"`
}

// TransformToLandscape centers a portrait video on a landscape canvas,
// either over a blurred copy of itself or a black background. A source
// that is already landscape is a no-op: the engine is not invoked and the
// original dimensions are returned, so repeated calls are idempotent.
func (p *Pipeline) TransformToLandscape(ctx context.Context, videoID string, opts ReframeOptions) (ReframeResult, error) {
	if opts.TargetWidth == 0 {
		opts.TargetWidth = 1920
	}
	if opts.TargetHeight == 0 {
		opts.TargetHeight = 1080
	}

	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return ReframeResult{}, err
	}

	src := p.store.UploadPath(v.Filename)

	srcW, srcH := v.Metadata.Width, v.Metadata.Height
	if srcW == 0 || srcH == 0 {
		md := p.engine.ProbeOrDefault(ctx, src)
		srcW, srcH = md.Width, md.Height
	}

	spec := filtergraph.ReframeSpec{
		SourceWidth:    srcW,
		SourceHeight:   srcH,
		TargetWidth:    opts.TargetWidth,
		TargetHeight:   opts.TargetHeight,
		BlurBackground: opts.BlurBackground,
	}

	result := ReframeResult{
		OriginalWidth:  srcW,
		OriginalHeight: srcH,
		NewWidth:       srcW,
		NewHeight:      srcH,
	}

	if !spec.IsPortrait() {
		return result, nil
	}

	graph := filtergraph.Reframe(spec)
	outName := artifactName(v.ID, "landscape")
	output := p.store.UploadPath(outName)

	p.markStatus(ctx, v, video.StatusProcessing)

	if err := p.engine.Render(ctx, []string{src}, graph.String(), []string{"[outv]", "0:a?"}, output); err != nil {
		_ = os.Remove(output)
		p.markStatus(ctx, v, video.StatusError)
		return ReframeResult{}, fmt.Errorf("pipeline: reframe render: %w", err)
	}

	md := p.engine.ProbeOrDefault(ctx, output)
	if md.Width == 0 || md.Height == 0 {
		md.Width, md.Height = opts.TargetWidth, opts.TargetHeight
	}

	v.Filename = outName
	v.Metadata.Width = md.Width
	v.Metadata.Height = md.Height
	v.Status = video.StatusReady
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		return ReframeResult{}, err
	}

	p.logger.Info("reframed to landscape",
		slog.String("video_id", videoID),
		slog.Int("original_width", srcW),
		slog.Int("original_height", srcH),
		slog.Int("new_width", md.Width),
		slog.Int("new_height", md.Height),
	)

	result.NewWidth = md.Width
	result.NewHeight = md.Height
	return result, nil
}
