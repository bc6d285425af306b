package modelhash

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tsawler/imagetext/internal/atomicfile"
)

const (
	// CacheFileName is the manifest cache stored inside the model directory.
	CacheFileName = "model_hashes.json"

	// ModelExtension selects which files in the model directory are hashed.
	ModelExtension = ".pth"
)

// Manifest maps a model filename to its lowercase hex content hash.
type Manifest map[string]string

// DefaultDir returns the EasyOCR model directory, ~/.EasyOCR/model.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".EasyOCR", "model"), nil
}

// CachePath returns the location of the manifest cache for dir.
func CachePath(dir string) string {
	return filepath.Join(dir, CacheFileName)
}

// Load reads the cached manifest from dir. The boolean reports whether a
// cache file was present; a missing cache is not an error.
func Load(dir string) (Manifest, bool, error) {
	data, err := os.ReadFile(CachePath(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read manifest cache: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, true, fmt.Errorf("failed to parse %s: %w", CachePath(dir), err)
	}
	return m, true, nil
}

// Compute hashes every *.pth file directly inside dir that is, or links to,
// a regular file. Subdirectories are not descended into. A missing dir or a
// dangling link is an error.
func Compute(dir string, alg Algorithm) (Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read model directory: %w", err)
	}

	m := make(Manifest)
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ModelExtension {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat model file: %w", err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		sum, err := HashFile(path, alg)
		if err != nil {
			return nil, err
		}
		m[entry.Name()] = sum
	}
	return m, nil
}

// Save writes m to the cache file in dir as compact JSON.
func Save(dir string, m Manifest) error {
	if m == nil {
		m = Manifest{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := atomicfile.WriteFile(CachePath(dir), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest cache: %w", err)
	}
	return nil
}
