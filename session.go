package imagetext

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/imagetext/modelhash"
	"github.com/tsawler/imagetext/ocr"
)

// session holds the state shared by every image in one run: the model
// manifest and the OCR engine. Both are created on first use, at most once,
// so a run over a fully processed tree never touches either.
type session struct {
	language  string
	factory   ocr.Factory
	modelDir  string
	algorithm modelhash.Algorithm
	log       logrus.FieldLogger

	modelsOnce sync.Once
	models     modelhash.Manifest
	modelsErr  error

	engineOnce sync.Once
	engine     ocr.Engine
	engineErr  error
}

func newSession(opts RunOptions, log logrus.FieldLogger) *session {
	return &session{
		language:  opts.language,
		factory:   opts.engine,
		modelDir:  opts.modelDir,
		algorithm: opts.algorithm,
		log:       log,
	}
}

// Manifest returns the model manifest, loading or computing it on the
// first call.
func (s *session) Manifest() (modelhash.Manifest, error) {
	s.modelsOnce.Do(func() {
		dir := s.modelDir
		if dir == "" {
			dir, s.modelsErr = modelhash.DefaultDir()
			if s.modelsErr != nil {
				return
			}
		}
		p := modelhash.NewProvider(dir,
			modelhash.WithAlgorithm(s.algorithm),
			modelhash.WithLogger(s.log),
		)
		s.models, s.modelsErr = p.Manifest()
		if s.modelsErr == nil {
			s.log.WithFields(logrus.Fields{
				"model_dir": p.Dir(),
				"models":    len(s.models),
			}).Debug("model manifest ready")
		}
	})
	return s.models, s.modelsErr
}

// Engine returns the OCR engine, constructing it for the run language on
// the first call.
func (s *session) Engine(ctx context.Context) (ocr.Engine, error) {
	s.engineOnce.Do(func() {
		s.engine, s.engineErr = s.factory(ctx, s.language)
		if s.engineErr != nil {
			s.engineErr = fmt.Errorf("failed to start OCR engine: %w", s.engineErr)
			return
		}
		s.log.WithField("engine", s.engine.Name()).Debug("OCR engine ready")
	})
	return s.engine, s.engineErr
}

// Close releases the engine if one was started.
func (s *session) Close() error {
	if s.engine == nil {
		return nil
	}
	return s.engine.Close()
}
