// Package id provides unique identifier generation for video records and
// derived artifacts.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generate creates a new unique video ID.
// Format: vid-<timestamp>-<random>
// Example: vid-1701432000-a1b2c3d4
func Generate() string {
	return WithPrefix("vid")
}

// WithPrefix creates a unique ID with the given prefix.
func WithPrefix(prefix string) string {
	timestamp := time.Now().Unix()
	random := make([]byte, 4)
	if _, err := rand.Read(random); err != nil {
		// Fallback to timestamp only if crypto/rand fails
		return fmt.Sprintf("%s-%d", prefix, timestamp)
	}
	return fmt.Sprintf("%s-%d-%s", prefix, timestamp, hex.EncodeToString(random))
}
