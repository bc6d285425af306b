package ocr

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/tsawler/imagetext/format"
)

// Preprocess reads the image at path and returns a PNG enhanced for OCR:
// EXIF orientation applied, converted to grayscale, contrast raised and
// edges sharpened. The image size is unchanged so region coordinates still
// refer to the original.
func Preprocess(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kind, err := format.DetectFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if kind == format.Unknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedImage)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 20)
	out = imaging.Sharpen(out, 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}
