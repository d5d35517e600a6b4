// Package storage provides artifact and temporary file storage for the
// media pipeline. It defines the Storage interface (port) for hexagonal
// architecture and implementations for local disk and S3 upload.
package storage

import (
	"context"
	"io"
)

// Storage defines the interface for pipeline file storage: uploaded
// sources, derived artifacts, per-operation temporary files, and optional
// S3 delivery of exports.
type Storage interface {
	// SaveUpload stores an uploaded source file under the uploads
	// directory with the given name and returns its absolute path.
	SaveUpload(ctx context.Context, name string, data io.Reader) (path string, err error)

	// UploadPath returns the absolute path of a file in the uploads
	// directory. It does not check existence.
	UploadPath(name string) string

	// ExportPath returns the absolute path of a file in the exports
	// directory. It does not check existence.
	ExportPath(name string) string

	// SaveTemp saves data to a temporary file and returns the file path.
	// The name parameter is used as a hint for the filename.
	SaveTemp(ctx context.Context, name string, data io.Reader) (path string, err error)

	// TempPath returns a fresh path in the temp directory without
	// creating the file; external processes write to it directly.
	TempPath(name string) string

	// CleanupTemp removes the specified files, continuing even if some
	// deletions fail.
	CleanupTemp(ctx context.Context, paths []string) error

	// UploadToS3 uploads data to S3 and returns the public URL.
	// Returns ErrS3NotConfigured if S3 is not configured.
	UploadToS3(ctx context.Context, key string, data io.Reader) (url string, err error)
}
