// Package parser provides interfaces and implementations for parsing image files.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
)

// Parser is the interface for image parsers.
type Parser interface {
	// Parse reads the image and returns an IR representation.
	Parse() (*ir.Document, error)

	// Close releases any resources held by the parser.
	Close() error
}

// Format represents an input file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// DetectFormat detects the input format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".jpe", ".jfif":
		return FormatJPEG
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 3)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < len(buf) {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// SOI followed by the prefix of the next marker
	if buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF {
		return FormatJPEG, nil
	}

	return FormatUnknown, nil
}

// Options contains parser configuration options.
type Options struct {
	RemoveOptionalMetadata bool // Drop header segments not needed for decoding
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		RemoveOptionalMetadata: false,
	}
}
