// Package storage holds the blob store used for product images. Two
// interchangeable backends exist: the local filesystem and any S3-compatible
// object store. The backend is selected once at startup; callers only see
// the BlobStore contract.
package storage

import "context"

// Upload is an in-memory file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BlobStore persists binary content and returns a durable, publicly
// resolvable reference. Store either returns a usable reference or an error
// with nothing durable left behind; there is no partially-written state a
// caller can observe.
type BlobStore interface {
	Store(ctx context.Context, upload Upload) (string, error)
	// Delete removes a previously stored blob by the reference Store returned.
	Delete(ctx context.Context, reference string) error
}
