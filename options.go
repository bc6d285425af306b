package imagetext

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/imagetext/modelhash"
	"github.com/tsawler/imagetext/ocr"
)

// RunOptions holds configuration for a run.
type RunOptions struct {
	language string

	// OCR engine construction
	engine ocr.Factory

	// Model manifest
	modelDir  string // empty means modelhash.DefaultDir()
	algorithm modelhash.Algorithm

	// Output
	stdout io.Writer
	logger logrus.FieldLogger
}

// defaultOptions returns the default run options.
func defaultOptions() RunOptions {
	return RunOptions{
		engine:    ocr.EasyOCRFactory(),
		algorithm: modelhash.MD5,
		stdout:    os.Stdout,
		logger:    discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
