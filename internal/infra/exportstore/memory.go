package exportstore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/darkroompro/devcalc/internal/domain/export"
)

// MemoryStorage keeps export artifacts in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Put stores a copy of the blob and returns metadata.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) (export.StoredObject, error) {
	blob := append([]byte(nil), data...)
	hash := md5.Sum(blob)
	s.mu.Lock()
	s.blobs[key] = blob
	s.mu.Unlock()
	return export.StoredObject{
		Key:      key,
		Size:     int64(len(blob)),
		MimeType: mimeType,
		ETag:     hex.EncodeToString(hash[:]),
	}, nil
}

// Get returns a reader for the stored blob.
func (s *MemoryStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, export.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(blob)), nil
}

var _ export.ObjectStorage = (*MemoryStorage)(nil)
