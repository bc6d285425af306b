package imagetext

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/imagetext/format"
	"github.com/tsawler/imagetext/modelhash"
	"github.com/tsawler/imagetext/ocr"
	"github.com/tsawler/imagetext/sidecar"
)

// Analyzer provides a fluent interface for running OCR over an image tree.
// Each configuration method returns a new Analyzer instance, allowing
// method chaining without mutating the receiver.
type Analyzer struct {
	root    string
	options RunOptions
}

// Summary reports what a run did.
type Summary struct {
	// Processed counts images that were recognized and got a new sidecar.
	Processed int
	// Skipped counts images whose sidecar already existed.
	Skipped int
	// Outputs lists the sidecars written, in walk order.
	Outputs []string
}

// clone creates a copy of the Analyzer.
func (a *Analyzer) clone() *Analyzer {
	n := *a
	return &n
}

// ============================================================================
// Configuration Methods (return new Analyzer instance)
// ============================================================================

// Language sets the language code passed to the OCR engine (e.g. "ja",
// "en", "ch_sim"). Required.
func (a *Analyzer) Language(code string) *Analyzer {
	n := a.clone()
	n.options.language = code
	return n
}

// Engine sets the factory used to construct the OCR engine. The default
// starts EasyOCR with python3 from PATH.
func (a *Analyzer) Engine(factory ocr.Factory) *Analyzer {
	n := a.clone()
	n.options.engine = factory
	return n
}

// ModelDir sets the directory holding the OCR model files and their hash
// cache. The default is ~/.EasyOCR/model.
func (a *Analyzer) ModelDir(dir string) *Analyzer {
	n := a.clone()
	n.options.modelDir = dir
	return n
}

// HashAlgorithm sets the algorithm used if the model manifest has to be
// computed. An existing cache is used as-is.
func (a *Analyzer) HashAlgorithm(alg modelhash.Algorithm) *Analyzer {
	n := a.clone()
	n.options.algorithm = alg
	return n
}

// Stdout sets where the path of each new sidecar is printed. Default is
// os.Stdout.
func (a *Analyzer) Stdout(w io.Writer) *Analyzer {
	n := a.clone()
	n.options.stdout = w
	return n
}

// Logger sets the progress logger. Default discards.
func (a *Analyzer) Logger(l logrus.FieldLogger) *Analyzer {
	n := a.clone()
	n.options.logger = l
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Run walks the tree and writes a sidecar for every image that lacks one.
// It stops at the first error; sidecars already written are kept and will
// be skipped by the next run.
func (a *Analyzer) Run(ctx context.Context) (summary Summary, err error) {
	if a.root == "" {
		return summary, fmt.Errorf("no directory specified")
	}
	if a.options.language == "" {
		return summary, fmt.Errorf("no language specified")
	}
	if a.options.engine == nil {
		return summary, fmt.Errorf("no OCR engine configured")
	}

	log := a.options.logger.WithFields(logrus.Fields{
		"run":      uuid.NewString(),
		"language": a.options.language,
	})
	sess := newSession(a.options, log)
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close OCR engine: %w", cerr)
		}
	}()

	err = filepath.WalkDir(walkRoot(a.root), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() || !format.IsSupported(d.Name()) {
			return nil
		}
		if err := a.process(ctx, sess, path, log, &summary); err != nil {
			return fmt.Errorf("failed to process %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
	}).Debug("run complete")
	return summary, nil
}

// walkRoot returns root with a trailing separator when it names a directory,
// so a root that is itself a symlink to a directory is followed. Symlinks
// below the root are still skipped.
func walkRoot(root string) string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() || strings.HasSuffix(root, string(os.PathSeparator)) {
		return root
	}
	return root + string(os.PathSeparator)
}

// process handles a single image.
func (a *Analyzer) process(ctx context.Context, sess *session, imagePath string, log logrus.FieldLogger, summary *Summary) error {
	if err := os.MkdirAll(sidecar.Dir(imagePath), 0o755); err != nil {
		return err
	}

	out := sidecar.Path(imagePath)
	exists, err := sidecar.Exists(out)
	if err != nil {
		return err
	}
	if exists {
		summary.Skipped++
		log.WithField("sidecar", out).Debug("sidecar exists, skipping")
		return nil
	}

	models, err := sess.Manifest()
	if err != nil {
		return err
	}
	engine, err := sess.Engine(ctx)
	if err != nil {
		return err
	}

	records, err := engine.ReadText(ctx, imagePath)
	if err != nil {
		return err
	}
	doc, err := sidecar.New(models, records)
	if err != nil {
		return err
	}
	if err := sidecar.Write(out, doc); err != nil {
		return err
	}

	summary.Processed++
	summary.Outputs = append(summary.Outputs, out)
	fmt.Fprintln(a.options.stdout, out)

	log.WithField("records", len(records)).Infof("Processed %s and saved results to %s/%s",
		filepath.Base(imagePath), sidecar.DirName, filepath.Base(out))
	return nil
}
