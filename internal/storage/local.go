package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes blobs to a directory on the local filesystem, to be
// served statically by the HTTP server. Files are named by upload timestamp
// plus the original extension, so references never collide in practice and
// carry no client-controlled path segments.
type LocalStore struct {
	dir        string
	publicBase string
}

// NewLocalStore ensures dir exists and returns a LocalStore whose references
// are publicBase + "/" + filename (publicBase defaults to "/uploads").
func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %q: %w", dir, err)
	}
	if publicBase == "" {
		publicBase = "/uploads"
	}
	return &LocalStore{
		dir:        dir,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Dir returns the directory uploads are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Store writes the upload to disk and returns its public reference. The blob
// lands in a temp file first and is renamed into place, so a failed write
// never leaves a half-written file behind the returned reference.
func (s *LocalStore) Store(ctx context.Context, upload Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("upload canceled: %w", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(upload.Filename))

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(upload.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize blob: %w", err)
	}

	return s.publicBase + "/" + name, nil
}

// Delete removes the blob behind a reference previously returned by Store.
// References outside the store's namespace are rejected.
func (s *LocalStore) Delete(_ context.Context, reference string) error {
	name, ok := strings.CutPrefix(reference, s.publicBase+"/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("reference %q is not managed by this store", reference)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
