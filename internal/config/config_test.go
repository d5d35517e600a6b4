package config

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/tmp/reelcut/uploads", cfg.UploadDir)
	assert.Equal(t, "/tmp/reelcut/exports", cfg.ExportDir)
	assert.Equal(t, "/tmp/reelcut/tmp", cfg.TempDir)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3Enabled())
	assert.False(t, cfg.TranscriptionEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "/data/uploads")
	t.Setenv("FONT_DIRS", "/fonts/a,/fonts/b")
	t.Setenv("WHISPER_API_KEY", "secret")
	t.Setenv("S3_BUCKET", "exports")
	t.Setenv("S3_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/data/uploads", cfg.UploadDir)
	assert.Equal(t, []string{"/fonts/a", "/fonts/b"}, cfg.FontDirs)
	assert.True(t, cfg.TranscriptionEnabled())
	assert.True(t, cfg.S3Enabled())
}

func TestS3Enabled_RequiresBucketAndRegion(t *testing.T) {
	cfg := &Config{S3Bucket: "exports"}
	assert.False(t, cfg.S3Enabled())

	cfg.S3Region = "eu-west-1"
	assert.True(t, cfg.S3Enabled())
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{
		Port:               8080,
		WhisperAPIKey:      "whisper-secret",
		AWSAccessKeyID:     "AKIA123",
		AWSSecretAccessKey: "aws-secret",
	}

	s := cfg.String()
	assert.NotContains(t, s, "whisper-secret")
	assert.NotContains(t, s, "AKIA123")
	assert.NotContains(t, s, "aws-secret")
	assert.True(t, strings.HasPrefix(s, "Config{"))
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		cfg := &Config{LogFormat: format, LogLevel: "info"}
		assert.NotNil(t, cfg.NewLogger())
	}
}
