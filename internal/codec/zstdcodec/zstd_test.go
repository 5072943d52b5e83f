package zstdcodec

import (
	"bytes"
	"io"
	"testing"
)

func TestCodec_Extension(t *testing.T) {
	c := New()
	if got := c.Extension(); got != "zst" {
		t.Errorf("Extension() = %q, want %q", got, "zst")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := New()
	original := bytes.Repeat([]byte("once upon a midnight dreary "), 500)

	var compressed bytes.Buffer
	writer, err := c.Writer(&compressed)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := writer.Write(original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Repetitive text must shrink.
	if compressed.Len() >= len(original) {
		t.Errorf("Expected compression, got %d bytes from %d bytes", compressed.Len(), len(original))
	}

	reader, err := c.Reader(&compressed)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !bytes.Equal(decompressed, original) {
		t.Error("Round-trip produced different data")
	}
}
