package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reelcut/reelcut-api/internal/video"
	"github.com/reelcut/reelcut-api/internal/video/id"
)

// Upload stores an uploaded source file, probes its metadata, and creates
// the video record. The stored filename is prefixed with the generated ID
// so concurrent uploads of the same name never collide.
func (p *Pipeline) Upload(ctx context.Context, originalFilename string, data io.Reader) (*video.Video, error) {
	videoID := id.Generate()
	name := videoID + "_" + filepath.Base(originalFilename)

	path, err := p.store.SaveUpload(ctx, name, data)
	if err != nil {
		return nil, err
	}

	md := p.engine.ProbeOrDefault(ctx, path)

	v := video.New(name, originalFilename, md)
	v.ID = videoID
	// The source is stored and probed, so the record is ready for edits.
	v.Status = video.StatusReady
	if err := p.repo.Save(ctx, v); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	p.logger.Info("video uploaded",
		slog.String("video_id", v.ID),
		slog.String("filename", originalFilename),
		slog.Float64("duration", md.Duration),
	)

	return v, nil
}

// Get returns the record for a video ID.
func (p *Pipeline) Get(ctx context.Context, videoID string) (*video.Video, error) {
	return p.repo.FindByID(ctx, videoID)
}

// List returns all video records, most recently updated first.
func (p *Pipeline) List(ctx context.Context) ([]*video.Video, error) {
	return p.repo.List(ctx)
}

// Delete removes the record and its current working artifact. A missing
// file is not an error; the record is the source of truth.
func (p *Pipeline) Delete(ctx context.Context, videoID string) error {
	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return err
	}

	if err := p.repo.Delete(ctx, videoID); err != nil {
		return err
	}

	if rmErr := os.Remove(p.store.UploadPath(v.Filename)); rmErr != nil && !os.IsNotExist(rmErr) {
		p.logger.Warn("could not remove video file",
			slog.String("video_id", videoID),
			slog.String("error", rmErr.Error()),
		)
	}

	return nil
}
