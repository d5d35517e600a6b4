package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reelcut/reelcut-api/internal/video/id"
)

// ErrS3NotConfigured is returned when S3 operations are attempted
// without proper configuration.
var ErrS3NotConfigured = errors.New("S3 storage is not configured")

// LocalStorage implements the Storage interface using local disk.
// Uploads, exports, and temporaries each live in their own directory.
// S3 operations are unsupported unless wrapped with S3Storage.
type LocalStorage struct {
	uploadDir string
	exportDir string
	tempDir   string
}

// NewLocalStorage creates a new LocalStorage instance, creating the
// directories if needed. Empty paths default to subdirectories of the
// system temp directory.
func NewLocalStorage(uploadDir, exportDir, tempDir string) (*LocalStorage, error) {
	if uploadDir == "" {
		uploadDir = filepath.Join(os.TempDir(), "reelcut", "uploads")
	}
	if exportDir == "" {
		exportDir = filepath.Join(os.TempDir(), "reelcut", "exports")
	}
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "reelcut", "tmp")
	}

	for _, dir := range []string{uploadDir, exportDir, tempDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
		}
	}

	return &LocalStorage{uploadDir: uploadDir, exportDir: exportDir, tempDir: tempDir}, nil
}

// TempDir returns the temporary directory path.
func (s *LocalStorage) TempDir() string {
	return s.tempDir
}

// SaveUpload stores an uploaded source file and returns its absolute path.
func (s *LocalStorage) SaveUpload(ctx context.Context, name string, data io.Reader) (string, error) {
	return s.writeFile(ctx, filepath.Join(s.uploadDir, filepath.Base(name)), data)
}

// UploadPath returns the absolute path of a file in the uploads directory.
func (s *LocalStorage) UploadPath(name string) string {
	return filepath.Join(s.uploadDir, filepath.Base(name))
}

// ExportPath returns the absolute path of a file in the exports directory.
func (s *LocalStorage) ExportPath(name string) string {
	return filepath.Join(s.exportDir, filepath.Base(name))
}

// SaveTemp saves data to a temporary file and returns the file path.
// The name is used as a base for the filename with a unique suffix.
func (s *LocalStorage) SaveTemp(ctx context.Context, name string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	f, err := os.CreateTemp(s.tempDir, name+"_*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	fileName := f.Name()
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(fileName)
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(fileName)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return fileName, nil
}

// TempPath returns a fresh unique path in the temp directory without
// creating the file.
func (s *LocalStorage) TempPath(name string) string {
	return filepath.Join(s.tempDir, id.Generate()+"_"+filepath.Base(name))
}

// CleanupTemp removes the specified files.
// It continues cleanup even if some files fail to delete,
// returning the first error encountered.
func (s *LocalStorage) CleanupTemp(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove temp file %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// UploadToS3 is not supported by LocalStorage and returns ErrS3NotConfigured.
func (s *LocalStorage) UploadToS3(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "", ErrS3NotConfigured
}

// writeFile copies data to the destination path, removing partial output
// when the copy fails.
func (s *LocalStorage) writeFile(ctx context.Context, dst string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	f, err := os.Create(dst) // #nosec G304 - dst is rooted in a configured storage dir
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close file: %w", err)
	}

	return dst, nil
}

// Verify interface implementation at compile time.
var _ Storage = (*LocalStorage)(nil)
