// Package main provides the entry point for the reelcut API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelcut/reelcut-api/internal/config"
	"github.com/reelcut/reelcut-api/internal/media"
	"github.com/reelcut/reelcut-api/internal/pipeline"
	"github.com/reelcut/reelcut-api/internal/server"
	"github.com/reelcut/reelcut-api/internal/silence"
	"github.com/reelcut/reelcut-api/internal/storage"
	"github.com/reelcut/reelcut-api/internal/subtitle"
	"github.com/reelcut/reelcut-api/internal/transcribe"
	"github.com/reelcut/reelcut-api/internal/video"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting reelcut API",
		slog.Int("port", cfg.Port),
		slog.String("log_format", cfg.LogFormat),
		slog.String("log_level", cfg.LogLevel),
		slog.String("upload_dir", cfg.UploadDir),
		slog.String("export_dir", cfg.ExportDir),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
		slog.Bool("transcription_enabled", cfg.TranscriptionEnabled()),
	)

	// Initialize storage backend
	var store storage.Storage
	if cfg.S3Enabled() {
		store, err = storage.NewS3Storage(cfg.UploadDir, cfg.ExportDir, cfg.TempDir, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	} else {
		store, err = storage.NewLocalStorage(cfg.UploadDir, cfg.ExportDir, cfg.TempDir)
	}
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	// Initialize pipeline collaborators
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
			return fmt.Errorf("create transcription client: %w", err)
		}
		opts = append(opts, pipeline.WithTranscriber(client))
	}

	p := pipeline.New(detector, engine, store, repo, rasterizer, opts...)

	// Initialize HTTP handlers and router
	handlers := server.NewHandlers(p, logger)
	router := server.NewRouter(handlers, logger, server.DefaultConfig())

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Allow for long video processing
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			slog.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-shutdownCh:
		logger.Info("received shutdown signal",
			slog.String("signal", sig.String()),
		)
	case err := <-errCh:
		return err
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
