// Package storage defines the blob storage interface and the per-request
// backend selection logic. Swap implementations by changing the concrete type
// injected at startup — the MinIO implementation works with any S3-compatible
// provider (MinIO, AWS S3, Cloudflare R2).
package storage

import (
	"context"
	"errors"
)

// Backend identifies which storage system handles a request.
type Backend string

const (
	// BackendBlob stores objects in the S3-compatible blob store.
	BackendBlob Backend = "KV"
	// BackendTelegram relays objects through the Telegram Bot API.
	BackendTelegram Backend = "TELEGRAM"
)

// Resolve picks the backend for a single request. Priority: the request's
// X-Storage-Type header value, then the process-wide configured default, then
// the blob store. Only the exact token "TELEGRAM" selects the relay backend;
// any other value (including empty) falls back to blob.
func Resolve(headerValue, configValue string) Backend {
	v := headerValue
	if v == "" {
		v = configValue
	}
	if v == string(BackendTelegram) {
		return BackendTelegram
	}
	return BackendBlob
}

// ObjectMeta is descriptive metadata stored alongside a blob.
type ObjectMeta struct {
	ContentType string
	Filename    string // original upload filename
	Size        int64
}

// ErrNotFound is returned by Get when no object exists under the given key.
var ErrNotFound = errors.New("object not found")

// BlobStore is the interface for writing and reading binary objects.
type BlobStore interface {
	// Put writes data under key together with its metadata.
	Put(ctx context.Context, key string, data []byte, meta ObjectMeta) error
	// Get reads the object and its metadata. Returns ErrNotFound when the
	// key has no entry.
	Get(ctx context.Context, key string) ([]byte, ObjectMeta, error)
}
