package mediagate

import (
	"context"
	"io"
)

// ObjectHandle is a single fetched object ready to stream. Range is the
// effective range actually served: nil means the whole object, which may
// differ from what the caller requested when the store clamped or ignored
// an unsatisfiable range. Response assembly must trust Range, not the
// original request, when choosing between 200 and 206.
type ObjectHandle struct {
	Body        io.ReadCloser
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	Range       *RangeSpec
}

// ObjectStore retrieves object bytes and metadata from a backing store.
//
// Fetch returns ErrNotFound when the object does not exist; a missing
// object is an expected outcome, not an exceptional one. Implementations
// must respect context cancellation so an aborted client download releases
// store-side resources, and the caller is responsible for closing the
// returned handle's Body.
type ObjectStore interface {
	Fetch(ctx context.Context, key string, rng *RangeSpec) (*ObjectHandle, error)
}
