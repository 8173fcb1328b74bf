package blob

import (
	"context"
	"errors"
	"io"
)

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("only image and pdf uploads are accepted")
)

// File is one uploaded part.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store persists uploads and returns the reference saved in the owning row.
type Store interface {
	Save(ctx context.Context, f File) (string, error)
	Delete(ctx context.Context, ref string) error
}
