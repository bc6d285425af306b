package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrOCRNotEnabled is returned when Tesseract support was not compiled in.
	// Rebuild with -tags ocr to enable it.
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

	// ErrEngineClosed is returned when an engine is used after Close.
	ErrEngineClosed = errors.New("ocr engine is closed")

	// ErrUnsupportedImage is returned for images that are neither PNG nor JPEG.
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// Engine recognizes text in image files.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string

	// ReadText runs recognition on the image at imagePath and returns one
	// JSON-encoded record per text region, in reading order.
	ReadText(ctx context.Context, imagePath string) ([]string, error)

	// Close releases the engine. It is safe to call more than once.
	Close() error
}

// Factory constructs an Engine for a language. The context bounds the
// lifetime of any process the engine starts.
type Factory func(ctx context.Context, language string) (Engine, error)

// EngineError reports a failure raised inside the OCR engine itself.
type EngineError struct {
	Engine  string
	Path    string
	Message string
}

func (e *EngineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Engine, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Engine, e.Path, e.Message)
}

// Record is the EasyOCR result shape for one text region. Boxes holds the
// region corners clockwise from top-left; Confident is in [0, 1].
type Record struct {
	Boxes     [][2]int `json:"boxes"`
	Text      string   `json:"text"`
	Confident float64  `json:"confident"`
}

// EncodeRecords converts records to the JSON strings engines return.
// HTML-significant characters are not escaped.
func EncodeRecords(records []Record) ([]string, error) {
	out := make([]string, 0, len(records))
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		buf.Reset()
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		out = append(out, string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))))
	}
	return out, nil
}
