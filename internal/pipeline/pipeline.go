// Package pipeline orchestrates the media transformation operations:
// silence-aware trimming, portrait-to-landscape reframing, subtitle
// generation and export, audio enhancement, and clip extraction. Each
// operation is synchronous and shells out to the media engine exactly
// once; intermediate files are scoped to the operation and removed on
// every exit path.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/reelcut/reelcut-api/internal/media"
	"github.com/reelcut/reelcut-api/internal/silence"
	"github.com/reelcut/reelcut-api/internal/storage"
	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/transcribe"
	"github.com/reelcut/reelcut-api/internal/video"
)

// Pipeline coordinates the detectors, graph builders, rasterizer, engine,
// and storage behind every transformation. Operations on different videos
// are independent and safe to run concurrently; calls against the same
// video are not serialized here.
type Pipeline struct {
	detector    silence.Detector
	engine      media.Engine
	store       storage.Storage
	repo        video.Repository
	rasterizer  *subtitle.Rasterizer
	transcriber transcribe.Client
	logger      *slog.Logger

	// rand.Rand is not safe for concurrent use; randMu serializes draws
	// so concurrent clip extractions do not race on the generator state.
	randMu sync.Mutex
	rand   *rand.Rand
}

// randFloat draws from the seeded random source under the lock.
func (p *Pipeline) randFloat() float64 {
	p.randMu.Lock()
	defer p.randMu.Unlock()
	return p.rand.Float64()
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTranscriber sets the speech-to-text backend. Without one, subtitle
// generation produces deterministic placeholder segments.
func WithTranscriber(c transcribe.Client) Option {
	return func(p *Pipeline) {
		p.transcriber = c
	}
}

// WithRandSeed seeds the random source used by clip extraction, making
// its output reproducible.
func WithRandSeed(seed uint64) Option {
	return func(p *Pipeline) {
		p.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// New creates a Pipeline with the required collaborators.
func New(detector silence.Detector, engine media.Engine, store storage.Storage, repo video.Repository, rasterizer *subtitle.Rasterizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		detector:   detector,
		engine:     engine,
		store:      store,
		repo:       repo,
		rasterizer: rasterizer,
		rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// artifactName builds the filename for a derived artifact of a video.
func artifactName(videoID, suffix string) string {
	return fmt.Sprintf("%s_%s.mp4", videoID, suffix)
}

// markStatus persists a status transition on its own. It is used around
// engine work, where the transform outcome must not be masked by a failed
// bookkeeping save, so save errors are only logged.
func (p *Pipeline) markStatus(ctx context.Context, v *video.Video, s video.Status) {
	v.Status = s
	v.Touch()
	if err := p.repo.Save(ctx, v); err != nil {
		p.logger.Warn("could not persist status",
			slog.String("video_id", v.ID),
			slog.String("status", string(s)),
			slog.String("error", err.Error()),
		)
	}
}
