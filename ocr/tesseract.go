//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with the Tesseract engine via gosseract and
// reports it as EasyOCR-shaped records, one per text line.
type Tesseract struct {
	client   *gosseract.Client
	cfg      tesseractConfig
	language string
}

// NewTesseract creates a Tesseract engine for an EasyOCR language code.
// The engine should be closed when no longer needed to release resources.
func NewTesseract(language string, opts ...TesseractOption) (*Tesseract, error) {
	var cfg tesseractConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(TesseractLanguage(language)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if cfg.pageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.pageSegMode)); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
		}
	}
	return &Tesseract{client: client, cfg: cfg, language: language}, nil
}

// Name returns "tesseract".
func (t *Tesseract) Name() string { return "tesseract" }

// Language returns the EasyOCR language code the engine was created for.
func (t *Tesseract) Language() string { return t.language }

// ReadText recognizes imagePath and returns one JSON record per line.
func (t *Tesseract) ReadText(ctx context.Context, imagePath string) ([]string, error) {
	if t.client == nil {
		return nil, ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t.cfg.preprocess {
		data, err := Preprocess(imagePath)
		if err != nil {
			return nil, err
		}
		if err := t.client.SetImageFromBytes(data); err != nil {
			return nil, fmt.Errorf("failed to set image: %w", err)
		}
	} else if err := t.client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	hocr, err := t.client.HOCRText()
	if err != nil {
		return nil, &EngineError{Engine: t.Name(), Path: imagePath, Message: err.Error()}
	}
	records, err := ParseHOCR(strings.NewReader(hocr))
	if err != nil {
		return nil, err
	}
	return EncodeRecords(records)
}

// Close releases Tesseract resources. It is safe to call more than once
// and on a nil engine.
func (t *Tesseract) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}
