package video

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a video cannot be found by ID.
var ErrNotFound = errors.New("video not found")

// Repository defines the interface for video record persistence.
// It acts as a port in the hexagonal architecture pattern.
type Repository interface {
	// Save persists a record. If the record already exists it is updated.
	Save(ctx context.Context, v *Video) error

	// FindByID retrieves a record by its unique identifier.
	// Returns ErrNotFound if it does not exist.
	FindByID(ctx context.Context, videoID string) (*Video, error)

	// List returns all records.
	List(ctx context.Context) ([]*Video, error)

	// Delete removes a record. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, videoID string) error
}
