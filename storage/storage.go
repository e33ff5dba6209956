package storage

import (
	"context"
	"strings"
)

// StoredImage describes a blob that was written to the backing store.
type StoredImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ImageStore uploads image payloads under collision-resistant names and
// deletes them again by name. Implementations must reject disallowed MIME
// types and oversized payloads before touching the network.
type ImageStore interface {
	Store(ctx context.Context, data []byte, mimeType, originalName string) (*StoredImage, error)
	Remove(ctx context.Context, name string) error
}

// FileNameFromURL extracts the stored object name from a public URL by taking
// the final path segment. This is lossy and coupled to the URL scheme the
// blob store emits; it only holds for URLs this package produced.
func FileNameFromURL(rawURL string) string {
	trimmed := rawURL
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
