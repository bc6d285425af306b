// Package format provides image format detection for the imagetext walker.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a Portable Network Graphics image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension the walker matches for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	default:
		return ""
	}
}

// Detect determines the image format from the filename extension.
// Matching is case-insensitive. Only ".png" and ".jpg" are recognized;
// ".jpeg" is deliberately Unknown.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []Format{PNG, JPEG} {
		if ext == f.Extension() {
			return f
		}
	}
	return Unknown
}

// IsSupported reports whether filename names an image the walker processes.
func IsSupported(filename string) bool {
	return Detect(filename) != Unknown
}

// DetectFromMagic checks file magic bytes to determine format.
// Returns Unknown if the data is too short or matches no signature.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pngMagic) {
		return PNG
	}
	if bytes.HasPrefix(data, jpegMagic) {
		return JPEG
	}
	return Unknown
}

// DetectFromReader reads the leading bytes of r and detects the format from
// its signature.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, len(pngMagic))
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
