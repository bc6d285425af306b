// Package ocr runs external OCR engines on image files.
//
// Engines are black boxes: given an image path they return one JSON-encoded
// record per detected text region, in the engine's own shape. Callers treat
// the records as opaque.
//
// # Engines
//
// [EasyOCR] is the default. It starts a single long-lived Python process that
// imports the easyocr package, builds a Reader for one language and answers
// requests over stdin/stdout. Python 3 and easyocr must be installed:
//
//	pip install easyocr
//
// [Tesseract] wraps the Tesseract engine via gosseract and synthesizes
// EasyOCR-shaped records from hOCR output. It is only available when built
// with the "ocr" tag:
//
//	go build -tags ocr ./cmd/imagetext
//
// Without the tag [NewTesseract] returns [ErrOCRNotEnabled].
//
// # Usage
//
//	engine, err := ocr.NewEasyOCR(ctx, "ja")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	records, err := engine.ReadText(ctx, "/book/ch1/p1.png")
package ocr
