package modelhash

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Provider lazily loads or computes the manifest for one model directory and
// memoizes the outcome for its lifetime.
type Provider struct {
	dir string
	alg Algorithm
	log logrus.FieldLogger

	once     sync.Once
	manifest Manifest
	err      error
}

// Option configures a Provider.
type Option func(*Provider)

// WithAlgorithm selects the hash used when the cache must be computed.
func WithAlgorithm(alg Algorithm) Option {
	return func(p *Provider) { p.alg = alg }
}

// WithLogger sets the logger used to report cache hits and rescans.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Provider) { p.log = log }
}

// NewProvider creates a Provider for the models in dir.
func NewProvider(dir string, opts ...Option) *Provider {
	p := &Provider{dir: dir, alg: MD5}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		p.log = l
	}
	return p
}

// Dir returns the model directory.
func (p *Provider) Dir() string { return p.dir }

// Manifest returns the model manifest. The first call loads the cache file or,
// if absent, scans and hashes the model files and writes the cache. Later
// calls return the same manifest (or error) without touching the disk.
func (p *Provider) Manifest() (Manifest, error) {
	p.once.Do(func() {
		p.manifest, p.err = p.loadOrCompute()
	})
	return p.manifest, p.err
}

func (p *Provider) loadOrCompute() (Manifest, error) {
	log := p.log.WithField("dir", p.dir)

	m, ok, err := Load(p.dir)
	if err != nil {
		return nil, err
	}
	if ok {
		log.Debug("using cached model hashes")
		return m, nil
	}

	log.WithField("algorithm", string(p.alg)).Info("hashing model files")
	m, err = Compute(p.dir, p.alg)
	if err != nil {
		return nil, err
	}
	if err := Save(p.dir, m); err != nil {
		return nil, err
	}
	log.WithField("models", len(m)).Debug("model hashes cached")
	return m, nil
}
