// Package sidecar names, encodes and writes the JSON files that hold the OCR
// results for one image.
//
// A sidecar lives in a "text" directory beside its image:
//
//	/book/ch1/p1.png -> /book/ch1/text/p1.easyocr.json
//
// and contains the model manifest plus the engine's records, untouched:
//
//	{"models":{"craft_mlt_25k.pth":"2f8e..."},"readResult":[{"boxes":...,"text":"hello","confident":0.98}]}
//
// A sidecar is written once and never updated; its existence marks the image
// as done.
package sidecar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/imagetext/internal/atomicfile"
	"github.com/tsawler/imagetext/modelhash"
)

const (
	// DirName is the subdirectory, beside each image, that holds sidecars.
	DirName = "text"

	// Extension replaces the image extension in the sidecar filename.
	Extension = ".easyocr.json"
)

// Document is the sidecar content for one image.
type Document struct {
	Models     modelhash.Manifest `json:"models"`
	ReadResult []json.RawMessage  `json:"readResult"`
}

// Dir returns the sidecar directory for imagePath.
func Dir(imagePath string) string {
	return filepath.Join(filepath.Dir(imagePath), DirName)
}

// Path returns the sidecar file path for imagePath.
func Path(imagePath string) string {
	base := filepath.Base(imagePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(Dir(imagePath), name+Extension)
}

// New builds a Document from the manifest and the JSON-encoded records
// returned by an OCR engine. Each record must be valid JSON.
func New(models modelhash.Manifest, records []string) (*Document, error) {
	doc := &Document{
		Models:     models,
		ReadResult: make([]json.RawMessage, 0, len(records)),
	}
	for i, rec := range records {
		if !json.Valid([]byte(rec)) {
			return nil, fmt.Errorf("record %d is not valid JSON: %.80q", i, rec)
		}
		doc.ReadResult = append(doc.ReadResult, json.RawMessage(rec))
	}
	return doc, nil
}

// Exists reports whether a sidecar is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Marshal encodes doc as compact JSON. Non-ASCII text and HTML-significant
// characters are written literally. No trailing newline is added.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write encodes doc and stores it at path. The parent directory must exist.
func Write(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode sidecar: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sidecar: %w", err)
	}
	return nil
}

// Read decodes the sidecar at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sidecar %s: %w", path, err)
	}
	return &doc, nil
}
