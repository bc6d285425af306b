// Package imagetext runs OCR over a tree of images and caches each image's
// results in a JSON sidecar file.
//
// Basic usage:
//
//	summary, err := imagetext.Dir("/book").Language("ja").Run(ctx)
//	if err != nil {
//	    // handle error; sidecars written so far are kept
//	}
//	log.Printf("%d processed, %d already done", summary.Processed, summary.Skipped)
//
// Every .png and .jpg file under the root gets a sidecar at
// <dir>/text/<name>.easyocr.json holding the OCR records and a hash manifest
// of the OCR models. Images that already have a sidecar are skipped, so an
// interrupted run can simply be started again.
//
// With options:
//
//	summary, err := imagetext.Dir("/book").
//	    Language("en").
//	    Engine(ocr.TesseractFactory(ocr.WithPreprocess(true))).
//	    HashAlgorithm(modelhash.SHA256).
//	    Logger(log).
//	    Run(ctx)
//
// The lower-level ocr, sidecar and modelhash packages are also available.
package imagetext

import "context"

// Dir returns an Analyzer for the image tree rooted at root.
//
// Example:
//
//	summary, err := imagetext.Dir("/book").Language("ja").Run(ctx)
func Dir(root string) *Analyzer {
	return &Analyzer{
		root:    root,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	summary := imagetext.Must(imagetext.Dir("/book").Language("ja").Run(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Run is shorthand for Dir(root).Language(language).Run(ctx) with the
// default engine and model directory.
func Run(ctx context.Context, root, language string) (Summary, error) {
	return Dir(root).Language(language).Run(ctx)
}
