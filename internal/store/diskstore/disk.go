// Package diskstore implements a disk-based document reader.
//
// It models the "slow disk" of the demo: every read may be delayed by a
// fixed simulated latency before the file is opened.
package diskstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/textshelf/shelf/internal/codec"
	"github.com/textshelf/shelf/internal/codec/gzipcodec"
	"github.com/textshelf/shelf/internal/codec/noopcodec"
	"github.com/textshelf/shelf/internal/codec/zstdcodec"
	"github.com/textshelf/shelf/internal/corpus"
	"github.com/textshelf/shelf/internal/store"
)

// Compile-time check that Store implements store.Reader.
var _ store.Reader = (*Store)(nil)

// Store is a disk-based document reader.
type Store struct {
	root    string
	codec   codec.Codec
	latency time.Duration
}

// New creates a new disk store rooted at the given directory.
// The directory must exist. The codec handles compression/decompression.
// A non-zero latency is slept before every read to simulate a slow disk.
func New(root string, codec codec.Codec, latency time.Duration) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:    root,
		codec:   codec,
		latency: latency,
	}, nil
}

// FromDir opens a generated corpus directory, picking the codec and the
// simulated latency from its manifest.
func FromDir(dir string) (*Store, error) {
	manifest, err := corpus.ReadManifest(dir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var cdc codec.Codec
	switch manifest.Compression {
	case "zstd":
		cdc = zstdcodec.New()
	case "gzip":
		cdc = gzipcodec.New()
	case "none", "":
		cdc = noopcodec.New()
	default:
		return nil, fmt.Errorf("unknown compression in manifest: %s", manifest.Compression)
	}

	return New(dir, cdc, manifest.Latency())
}

// ReadDocument reads and decompresses the content of the given document.
func (s *Store) ReadDocument(ctx context.Context, id int) ([]byte, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.latency):
		}
	} else {
		// Check for cancellation before starting I/O.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	path := s.docPath(id)

	compressed, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}

	// Decompress using codec.
	reader, err := s.codec.Reader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing document: %w", err)
	}

	return content, nil
}

// Latency returns the simulated per-read latency.
func (s *Store) Latency() time.Duration {
	return s.latency
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// docPath returns the filesystem path for a document.
func (s *Store) docPath(id int) string {
	return filepath.Join(s.root, "docs", s.docName(id))
}

// docName returns the filename for a document ID.
func (s *Store) docName(id int) string {
	name := fmt.Sprintf("doc_%03d", id)
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}
