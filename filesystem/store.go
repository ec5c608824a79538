// Package filesystem provides a local file system object store for the
// media gateway. Reads are sandboxed under an os.Root so traversal-style
// keys cannot escape the storage directory, and range requests are served
// with seek plus a limited reader.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
)

// Store serves objects from a directory tree.
type Store struct {
	root *os.Root
}

// NewStore creates a Store rooted at the given directory. The root provides
// sandboxed file operations preventing path traversal.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Fetch opens the object at key, optionally positioned at the requested
// byte range. Returns mediagate.ErrNotFound if the key does not resolve to
// a regular file; an unsatisfiable range falls back to the whole object.
func (s *Store) Fetch(ctx context.Context, key string, rng *mediagate.RangeSpec) (*mediagate.ObjectHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(key)
	if err != nil {
		// Keys are untrusted input. Besides plain missing files, os.Root
		// rejects escaping paths with its own error; both resolve to the
		// same answer for a caller.
		if errors.Is(err, os.ErrNotExist) {
			return nil, mediagate.ErrNotFound
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, mediagate.ErrNotFound
		}
		return nil, fmt.Errorf("open object: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat object: %w", err)
	}

	if info.IsDir() {
		_ = f.Close()
		return nil, mediagate.ErrNotFound
	}

	size := info.Size()
	eff := rng.Clamp(size)

	var body io.ReadCloser = f
	if eff != nil {
		if _, err := f.Seek(eff.Offset, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("seek object: %w", err)
		}
		body = &sectionReader{Reader: io.LimitReader(f, eff.Length), closer: f}
	}

	return &mediagate.ObjectHandle{
		Body:        body,
		Size:        size,
		ETag:        fileETag(info),
		ContentType: detectContentType(key),
		Range:       eff,
	}, nil
}

// sectionReader bounds reads to the effective range while closing the
// underlying file.
type sectionReader struct {
	io.Reader
	closer io.Closer
}

func (r *sectionReader) Close() error {
	return r.closer.Close()
}

// fileETag derives a weak validator from modification time and size, the
// same scheme nginx uses for static files. Objects under the gateway are
// written once, so this is stable for the object's lifetime.
func fileETag(info os.FileInfo) string {
	return fmt.Sprintf(`"%x-%x"`, info.ModTime().Unix(), info.Size())
}

func detectContentType(key string) string {
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
