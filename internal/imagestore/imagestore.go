// Package imagestore owns the captured image bytes referenced by document
// records. The file backend copies images into an app-private directory;
// the S3 backend keeps them in an S3-compatible bucket.
package imagestore

import "context"

// Store places the source image under the store's ownership and keys it by
// the owning document id.
//
// Add returns the stored URI and the byte size. For data: URIs the source
// is kept verbatim and the size is estimated from the base64 payload length
// (bytes ~= base64Length * 3/4) — an approximation, not an exact count;
// downstream consumers must not rely on exact sizes for those.
type Store interface {
	Add(ctx context.Context, sourceURI, documentID string) (uri string, size int64, err error)
	Remove(ctx context.Context, uri string) error
	Clear(ctx context.Context) error
}
