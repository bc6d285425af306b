package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/imagetext/internal/config"
	"github.com/tsawler/imagetext/modelhash"
)

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCode int
	}{
		{"no arguments", nil, 1},
		{"one argument", []string{"/book"}, 1},
		{"too many arguments", []string{"/book", "ja", "extra"}, 1},
		{"help", []string{"--help"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), tt.argv, &stdout, &stderr); got != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", got, tt.wantCode, stderr.String())
			}
			if tt.wantCode == 1 && !strings.Contains(stderr.String(), "Usage") {
				t.Errorf("usage not written to stderr: %q", stderr.String())
			}
			if tt.wantCode == 0 && !strings.Contains(stdout.String(), "imagetext") {
				t.Errorf("help not written to stdout: %q", stdout.String())
			}
		})
	}
}

func TestRunEmptyTree(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	// Nothing to recognize, so the engine and model directory are never used.
	argv := []string{"--python", "/nonexistent/python", "--model-dir", filepath.Join(root, "models"), root, "en"}
	if got := run(context.Background(), argv, &stdout, &stderr); got != 0 {
		t.Fatalf("run() = %d, want 0 (stderr: %s)", got, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRunEngineFailure(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "p1.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	models := t.TempDir()
	if err := modelhash.Save(models, modelhash.Manifest{}); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	argv := []string{"--python", filepath.Join(root, "no-such-python"), "--model-dir", models, root, "en"}
	if got := run(context.Background(), argv, &stdout, &stderr); got != 1 {
		t.Fatalf("run() = %d, want 1", got)
	}
	if !strings.Contains(stderr.String(), "p1.png") {
		t.Errorf("stderr does not name the failing image: %s", stderr.String())
	}
}

func TestRunInvalidEngine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if got := run(context.Background(), []string{"--engine", "paddle", t.TempDir(), "en"}, &stdout, &stderr); got != 1 {
		t.Errorf("run() = %d, want 1", got)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagetext.yaml")
	yaml := "engine: tesseract\npython: /opt/py/bin/python\nhash_algorithm: sha256\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(args{Config: path, Engine: "EasyOCR", ModelDir: "/models", Preprocess: true})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Engine != config.EngineEasyOCR {
		t.Errorf("Engine = %q, want flag value easyocr", cfg.Engine)
	}
	if cfg.Python != "/opt/py/bin/python" {
		t.Errorf("Python = %q, want value from file", cfg.Python)
	}
	if cfg.HashAlgorithm != "sha256" {
		t.Errorf("HashAlgorithm = %q, want sha256", cfg.HashAlgorithm)
	}
	if cfg.ModelDir != "/models" || !cfg.Preprocess {
		t.Errorf("flag overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownHash(t *testing.T) {
	_, err := loadConfig(args{Hash: "crc32"})
	if !errors.Is(err, modelhash.ErrUnknownAlgorithm) {
		t.Errorf("loadConfig error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestEngineFactory(t *testing.T) {
	for _, engine := range []string{config.EngineEasyOCR, config.EngineTesseract} {
		cfg := config.Default()
		cfg.Engine = engine
		if engineFactory(cfg, &bytes.Buffer{}) == nil {
			t.Errorf("engineFactory(%q) returned nil", engine)
		}
	}
}
