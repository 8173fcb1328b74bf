package blobmock

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"vms-backend/internal/domain/blob"
)

var _ blob.Store = (*Store)(nil)

// Store keeps uploads in memory. Files whose content type is neither image
// nor pdf are rejected like the real store does.
type Store struct {
	mu    sync.Mutex
	Files map[string][]byte
	n     int
}

func New() *Store { return &Store{Files: map[string][]byte{}} }

func (s *Store) Save(_ context.Context, f blob.File) (string, error) {
	if !strings.HasPrefix(f.ContentType, "image/") && f.ContentType != "application/pdf" {
		return "", blob.ErrUnsupportedType
	}
	b, err := io.ReadAll(f.Body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	ref := fmt.Sprintf("/uploads/%d-%s", s.n, f.Filename)
	s.Files[ref] = b
	return ref, nil
}

func (s *Store) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, ref)
	return nil
}
