//go:build !ocr

package ocr

import "context"

// Tesseract is a stub engine used when the "ocr" build tag is not set.
// All operations return ErrOCRNotEnabled.
type Tesseract struct{}

// NewTesseract returns ErrOCRNotEnabled.
// To enable Tesseract, rebuild with: go build -tags ocr
func NewTesseract(language string, opts ...TesseractOption) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Name returns "tesseract".
func (t *Tesseract) Name() string { return "tesseract" }

// ReadText returns ErrOCRNotEnabled.
func (t *Tesseract) ReadText(ctx context.Context, imagePath string) ([]string, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub engine.
// It is safe to call on a nil engine.
func (t *Tesseract) Close() error {
	return nil
}
