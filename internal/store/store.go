// Package store defines the backing-store interface for reading documents.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist in the store.
var ErrNotFound = errors.New("store: document not found")

// Reader defines the interface for document backing stores.
// Implementations handle file layout, compression, and simulated latency
// internally; the cache treats a Reader as an opaque slow lookup.
type Reader interface {
	// ReadDocument reads the content of the document with the given ID.
	// Returns ErrNotFound if the document does not exist.
	ReadDocument(ctx context.Context, id int) ([]byte, error)

	// Close releases any resources held by the reader.
	Close() error
}
