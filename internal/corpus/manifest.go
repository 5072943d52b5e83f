package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest contains metadata about a generated document corpus.
type Manifest struct {
	Version     int       `json:"version"`
	NumDocs     int       `json:"num_docs"`
	WordsPerDoc int       `json:"words_per_doc"`
	Compression string    `json:"compression"`
	LatencyMS   int64     `json:"latency_ms"`
	BuiltAt     time.Time `json:"built_at"`
	Source      string    `json:"source,omitempty"`
}

// Latency returns the simulated slow-disk latency recorded in the manifest.
func (m *Manifest) Latency() time.Duration {
	return time.Duration(m.LatencyMS) * time.Millisecond
}

const manifestFilename = "manifest.json"

// WriteManifest writes the manifest to the corpus directory.
func WriteManifest(dir string, m *Manifest) error {
	path := filepath.Join(dir, manifestFilename)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest from a corpus directory.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
