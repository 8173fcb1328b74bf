package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"vms-backend/internal/domain/blob"
)

// extByType is the upload allow-list; the stored extension always comes from it.
var extByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

const sniffLen = 3072

// LocalStore keeps uploads in a flat directory and hands out references
// under urlPrefix (served statically by the API).
type LocalStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

var _ blob.Store = (*LocalStore)(nil)

func NewLocalStore(dir, urlPrefix string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), maxBytes: maxBytes}, nil
}

func (s *LocalStore) Save(_ context.Context, f blob.File) (string, error) {
	if f.Size > s.maxBytes {
		return "", blob.ErrTooLarge
	}
	br := bufio.NewReaderSize(f.Body, sniffLen)
	head, _ := br.Peek(sniffLen)
	// the body decides the type; a declared type must agree with it
	ct := normalizeType(mimetype.Detect(head).String())
	ext, ok := extByType[ct]
	if !ok {
		return "", blob.ErrUnsupportedType
	}
	if declared := normalizeType(f.ContentType); declared != "" && declared != "application/octet-stream" && declared != ct {
		return "", blob.ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// read one byte past the limit to detect oversize bodies with a lying Size
	n, err := io.Copy(dst, io.LimitReader(br, s.maxBytes+1))
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("store upload: %w", err)
	}
	if n > s.maxBytes {
		_ = os.Remove(dst.Name())
		return "", blob.ErrTooLarge
	}
	return path.Join(s.urlPrefix, name), nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	name := path.Base(ref)
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func normalizeType(ct string) string {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}
