// Package corpus generates the text corpus served by the disk store.
//
// A corpus is a directory of fixed-size documents split from one source
// text, plus a manifest recording how it was built. Document IDs run from
// 1 to NumDocs.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/textshelf/shelf/internal/codec"
	"github.com/textshelf/shelf/internal/codec/noopcodec"
)

// Defaults for corpus generation.
const (
	DefaultNumDocs     = 100
	DefaultWordsPerDoc = 1000
)

// ProgressFunc is called after each document is written.
type ProgressFunc func(done, total int)

// Config describes a corpus to build.
type Config struct {
	// Source is the raw text to split into documents.
	Source []byte
	// SourceName labels the source in the manifest (a path or URL).
	SourceName string
	// OutDir is the corpus root; it is created if missing.
	OutDir string
	// NumDocs is the number of documents to generate (default 100).
	NumDocs int
	// WordsPerDoc is the word count per document (default 1000).
	WordsPerDoc int
	// Codec compresses document files (default: no compression).
	Codec codec.Codec
	// Latency is the simulated slow-disk read latency recorded in the
	// manifest for readers to honor.
	Latency time.Duration
	// Progress is called after each document is written. Optional.
	Progress ProgressFunc
}

// Build splits the source text into documents and writes them, one file per
// document, into <OutDir>/docs, then writes the manifest. When the source
// is too short it wraps around to the beginning, so every document reaches
// its word count.
func Build(cfg Config) (*Manifest, error) {
	if cfg.NumDocs <= 0 {
		cfg.NumDocs = DefaultNumDocs
	}
	if cfg.WordsPerDoc <= 0 {
		cfg.WordsPerDoc = DefaultWordsPerDoc
	}
	if cfg.Codec == nil {
		cfg.Codec = noopcodec.New()
	}

	words := strings.Fields(string(cfg.Source))
	if len(words) == 0 {
		return nil, fmt.Errorf("source text is empty")
	}

	docsDir := filepath.Join(cfg.OutDir, "docs")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating docs directory: %w", err)
	}

	wordIndex := 0
	for id := 1; id <= cfg.NumDocs; id++ {
		chunk := make([]string, 0, cfg.WordsPerDoc)
		for len(chunk) < cfg.WordsPerDoc {
			if wordIndex >= len(words) {
				wordIndex = 0
			}
			chunk = append(chunk, words[wordIndex])
			wordIndex++
		}

		if err := writeDocument(docsDir, id, []byte(strings.Join(chunk, " ")), cfg.Codec); err != nil {
			return nil, fmt.Errorf("writing document %d: %w", id, err)
		}
		if cfg.Progress != nil {
			cfg.Progress(id, cfg.NumDocs)
		}
	}

	m := &Manifest{
		Version:     1,
		NumDocs:     cfg.NumDocs,
		WordsPerDoc: cfg.WordsPerDoc,
		Compression: compressionName(cfg.Codec),
		LatencyMS:   cfg.Latency.Milliseconds(),
		BuiltAt:     time.Now().UTC(),
		Source:      cfg.SourceName,
	}
	if err := WriteManifest(cfg.OutDir, m); err != nil {
		return nil, err
	}
	return m, nil
}

func writeDocument(docsDir string, id int, content []byte, c codec.Codec) error {
	name := fmt.Sprintf("doc_%03d", id)
	if ext := c.Extension(); ext != "" {
		name += "." + ext
	}

	f, err := os.Create(filepath.Join(docsDir, name))
	if err != nil {
		return err
	}

	w, err := c.Writer(f)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := w.Write(content); err != nil {
		w.Close()
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// compressionName maps a codec to the manifest compression field.
func compressionName(c codec.Codec) string {
	switch c.Extension() {
	case "zst":
		return "zstd"
	case "gz":
		return "gzip"
	default:
		return "none"
	}
}
