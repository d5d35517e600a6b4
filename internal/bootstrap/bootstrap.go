// Package bootstrap provides dependency initialization for the reelcut API.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/reelcut/reelcut-api/internal/config"
	"github.com/reelcut/reelcut-api/internal/media"
	"github.com/reelcut/reelcut-api/internal/pipeline"
	"github.com/reelcut/reelcut-api/internal/silence"
	"github.com/reelcut/reelcut-api/internal/storage"
	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/transcribe"
	"github.com/reelcut/reelcut-api/internal/video"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Pipeline *pipeline.Pipeline
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	engine := media.NewFFmpegEngine(cfg.FFmpegPath, cfg.FFprobePath)
	detector := silence.NewFFmpegDetector(cfg.FFmpegPath)
	rasterizer := subtitle.NewRasterizer(subtitle.NewFSResolver(cfg.FontDirs))
	repo := video.NewMemoryRepository()

	opts := []pipeline.Option{pipeline.WithLogger(logger)}

	if cfg.TranscriptionEnabled() {
		clientOpts := []transcribe.ClientOption{transcribe.WithAPIKey(cfg.WhisperAPIKey)}
		if cfg.WhisperBaseURL != "" {
			clientOpts = append(clientOpts, transcribe.WithBaseURL(cfg.WhisperBaseURL))
		}
		client, err := transcribe.NewClient(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create transcription client: %w", err)
		}
		opts = append(opts, pipeline.WithTranscriber(client))
		logger.Info("transcription backend configured")
	} else {
		logger.Info("no transcription backend, subtitle generation uses placeholders")
	}

	p := pipeline.New(detector, engine, store, repo, rasterizer, opts...)

	return &Dependencies{Pipeline: p}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.UploadDir, cfg.ExportDir, cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.UploadDir, cfg.ExportDir, cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("upload_dir", cfg.UploadDir),
		slog.String("export_dir", cfg.ExportDir),
	)
	return localStore, nil
}
