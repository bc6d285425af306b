package ocr

import "context"

type tesseractConfig struct {
	preprocess  bool
	pageSegMode int
}

// TesseractOption configures a Tesseract engine.
type TesseractOption func(*tesseractConfig)

// WithPreprocess enables grayscale, contrast and sharpen preprocessing
// before recognition. See Preprocess.
func WithPreprocess(enabled bool) TesseractOption {
	return func(c *tesseractConfig) { c.preprocess = enabled }
}

// WithPageSegMode sets the Tesseract page segmentation mode. Zero keeps
// Tesseract's default (fully automatic).
func WithPageSegMode(mode int) TesseractOption {
	return func(c *tesseractConfig) { c.pageSegMode = mode }
}

// TesseractFactory returns a Factory that creates Tesseract engines with opts.
func TesseractFactory(opts ...TesseractOption) Factory {
	return func(ctx context.Context, language string) (Engine, error) {
		t, err := NewTesseract(language, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}
