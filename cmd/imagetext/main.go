// Command imagetext runs OCR over every .png and .jpg image under a
// directory and caches the results next to each image in
// text/<name>.easyocr.json.
//
// Usage:
//
//	imagetext [flags] <path> <language>
//
// The path of each new sidecar is printed to stdout. Progress and errors
// go to stderr. Images that already have a sidecar are skipped, so the
// command can be rerun after a failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/imagetext"
	"github.com/tsawler/imagetext/internal/config"
	"github.com/tsawler/imagetext/modelhash"
	"github.com/tsawler/imagetext/ocr"
)

type args struct {
	Path       string `arg:"positional,required" help:"directory to scan for images"`
	Language   string `arg:"positional,required" help:"OCR language code, e.g. ja, en, ch_sim"`
	Config     string `arg:"-c,--config" help:"YAML config file"`
	Engine     string `arg:"-e,--engine" help:"OCR engine: easyocr or tesseract"`
	Python     string `arg:"--python" help:"Python interpreter used for EasyOCR"`
	ModelDir   string `arg:"--model-dir" help:"EasyOCR model directory [default: ~/.EasyOCR/model]"`
	Hash       string `arg:"--hash" help:"algorithm for a new model manifest: md5, sha256 or blake2b"`
	Preprocess bool   `arg:"--preprocess" help:"enhance images before Tesseract recognition"`
	Verbose    bool   `arg:"-v,--verbose" help:"enable debug logging"`
}

func (args) Description() string {
	return "Run OCR over the .png and .jpg images under a directory and cache the results as JSON sidecars."
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var a args
	p, err := arg.NewParser(arg.Config{Program: "imagetext"}, &a)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	switch err := p.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelp(stdout)
		return 0
	case err != nil:
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig(a)
	if err != nil {
		log.Errorf("invalid configuration: %v", err)
		return 1
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Errorf("invalid configuration: %v", err)
		return 1
	}
	if a.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	alg, err := modelhash.ParseAlgorithm(cfg.HashAlgorithm)
	if err != nil {
		log.Errorf("invalid configuration: %v", err)
		return 1
	}

	summary, err := imagetext.Dir(a.Path).
		Language(a.Language).
		Engine(engineFactory(cfg, stderr)).
		ModelDir(cfg.ModelDir).
		HashAlgorithm(alg).
		Stdout(stdout).
		Logger(log).
		Run(ctx)
	if err != nil {
		log.Error(err)
		return 1
	}

	log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
	}).Debug("finished")
	return 0
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(a args) (config.Config, error) {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return cfg, err
	}
	if a.Engine != "" {
		cfg.Engine = a.Engine
	}
	if a.Python != "" {
		cfg.Python = a.Python
	}
	if a.ModelDir != "" {
		cfg.ModelDir = a.ModelDir
	}
	if a.Hash != "" {
		cfg.HashAlgorithm = a.Hash
	}
	if a.Preprocess {
		cfg.Preprocess = true
	}
	cfg.Engine = strings.ToLower(cfg.Engine)
	return cfg, cfg.Validate()
}

// engineFactory returns the factory for the configured engine. cfg must
// have passed Validate.
func engineFactory(cfg config.Config, stderr io.Writer) ocr.Factory {
	if cfg.Engine == config.EngineTesseract {
		return ocr.TesseractFactory(ocr.WithPreprocess(cfg.Preprocess))
	}
	return ocr.EasyOCRFactory(
		ocr.WithPython(cfg.Python),
		ocr.WithStderr(stderr),
	)
}
