package predictor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/features"
)

// ErrModelUnavailable means no usable artifact is installed. Prediction
// is blocked; every other operation continues normally.
var ErrModelUnavailable = errors.New("model artifact unavailable")

// PredictionError reports that the regressor rejected an assembled row.
// It carries the underlying cause and is surfaced once, without retries.
type PredictionError struct {
	Cause error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Cause)
}

func (e *PredictionError) Unwrap() error {
	return e.Cause
}

// Regressor scores a feature row. Handlers depend on this interface so
// tests can substitute a stub.
type Regressor interface {
	Predict(ctx context.Context, row features.Row) (float64, error)
	Available() bool
}

// Invoker owns the artifact lifecycle: loaded lazily on first use, cached
// for the life of the process, never reloaded. A failed load is also
// cached, so a missing artifact deterministically reports unavailable on
// every request.
type Invoker struct {
	path string

	once     sync.Once
	artifact *Artifact
	loadErr  error
}

// NewInvoker creates an invoker for the artifact at path. Nothing is read
// until the first Predict or Available call.
func NewInvoker(path string) *Invoker {
	return &Invoker{path: path}
}

func (inv *Invoker) load() {
	inv.once.Do(func() {
		a, err := LoadArtifact(inv.path)
		if err != nil {
			if os.IsNotExist(err) {
				log.WithField("path", inv.path).Warn("model artifact not found, predictions disabled")
			} else {
				log.WithError(err).WithField("path", inv.path).Error("model artifact failed to load")
			}
			inv.loadErr = err
			return
		}
		inv.artifact = a
		log.WithFields(log.Fields{
			"path":   inv.path,
			"schema": a.SchemaVersion,
			"trees":  len(a.Forest.Trees),
		}).Info("model artifact loaded")
	})
}

// Available reports whether the artifact is loaded and usable.
func (inv *Invoker) Available() bool {
	inv.load()
	return inv.artifact != nil
}

// Predict scores the row. The row's schema must match the artifact's
// exactly, in field set and order; any disagreement is a PredictionError,
// never a silent misalignment.
func (inv *Invoker) Predict(ctx context.Context, row features.Row) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	inv.load()
	if inv.artifact == nil {
		return 0, ErrModelUnavailable
	}

	if row.Schema.Version != inv.artifact.SchemaVersion {
		return 0, &PredictionError{Cause: fmt.Errorf(
			"row schema %q does not match artifact schema %q",
			row.Schema.Version, inv.artifact.SchemaVersion)}
	}
	vec, err := inv.artifact.encode(row)
	if err != nil {
		return 0, &PredictionError{Cause: err}
	}
	// The model is not constrained to non-negative outputs and no
	// clamping is applied.
	return inv.artifact.score(vec), nil
}
