package modelhash

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// chunkSize bounds the memory used while hashing a model file.
const chunkSize = 8192

// ErrUnknownAlgorithm is returned for an unsupported hash algorithm name.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Algorithm names a content hash function.
type Algorithm string

// Supported algorithms.
const (
	MD5     Algorithm = "md5"
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
)

// ParseAlgorithm converts a case-insensitive name into an Algorithm.
// The empty string selects MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", MD5:
		return MD5, nil
	case SHA256:
		return SHA256, nil
	case BLAKE2b:
		return BLAKE2b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// New returns a fresh hash.Hash for the algorithm.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

// HashFile streams the file at path through the algorithm and returns the
// lowercase hex digest.
func HashFile(path string, alg Algorithm) (string, error) {
	h, err := alg.New()
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
