// Package config loads imagetext settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/imagetext/modelhash"
)

// Engine names.
const (
	EngineEasyOCR   = "easyocr"
	EngineTesseract = "tesseract"
)

// ErrUnknownEngine is returned for an engine name other than easyocr or
// tesseract.
var ErrUnknownEngine = errors.New("unknown OCR engine")

// Config holds settings that do not vary per run. The image root and
// language always come from the command line.
type Config struct {
	// Engine selects the OCR engine: "easyocr" (default) or "tesseract".
	Engine string `yaml:"engine"`

	// Python is the interpreter used to run EasyOCR.
	Python string `yaml:"python"`

	// ModelDir overrides the EasyOCR model directory. Empty means
	// ~/.EasyOCR/model.
	ModelDir string `yaml:"model_dir"`

	// HashAlgorithm is used when the model manifest must be computed.
	HashAlgorithm string `yaml:"hash_algorithm"`

	// Preprocess enables image enhancement before Tesseract recognition.
	Preprocess bool `yaml:"preprocess"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine:        EngineEasyOCR,
		Python:        "python3",
		HashAlgorithm: string(modelhash.MD5),
		LogLevel:      "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the engine and hash algorithm names.
func (c Config) Validate() error {
	switch strings.ToLower(c.Engine) {
	case EngineEasyOCR, EngineTesseract:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, c.Engine)
	}
	if _, err := modelhash.ParseAlgorithm(c.HashAlgorithm); err != nil {
		return err
	}
	return nil
}
