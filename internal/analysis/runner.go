// Package analysis orchestrates the one-shot pipeline:
//
//	Fingerprint -> Classification -> Findings -> Recommendations
//
// The pipeline is linear and stateless across runs. Every stage after the
// fingerprint walk is a pure function of its predecessor's output, so a
// single Runner may serve concurrent analyses as long as the catalog it
// holds is never mutated after load.
package analysis

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repolens/internal/antipattern"
	"repolens/internal/catalog"
	"repolens/internal/classify"
	"repolens/internal/compare"
	"repolens/internal/finding"
	"repolens/internal/fingerprint"
	"repolens/internal/recommend"
)

// Options configures a Runner.
type Options struct {
	Fingerprint fingerprint.Config
	Detector    antipattern.Config
	Logger      *zap.Logger
}

// Runner executes analysis runs against a shared read-only catalog.
type Runner struct {
	cat     *catalog.Catalog
	builder *fingerprint.Builder
	det     antipattern.Config
	log     *zap.Logger
}

// NewRunner wires a runner. A nil logger disables logging.
func NewRunner(cat *catalog.Catalog, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Detector.MaxDepth <= 0 {
		opts.Detector.MaxDepth = antipattern.DefaultConfig().MaxDepth
	}
	if len(opts.Detector.Enabled) == 0 {
		opts.Detector.Enabled = cat.AntiPatterns
	}
	// The walk records directories one level past its depth cutoff, so it
	// must descend at least to the nesting threshold for deep_nesting to
	// see an entry beyond it.
	if opts.Fingerprint.Depth <= 0 {
		opts.Fingerprint.Depth = fingerprint.DefaultConfig().Depth
	}
	if opts.Fingerprint.Depth < opts.Detector.MaxDepth {
		opts.Fingerprint.Depth = opts.Detector.MaxDepth
	}
	return &Runner{
		cat:     cat,
		builder: fingerprint.NewBuilder(opts.Fingerprint),
		det:     opts.Detector,
		log:     opts.Logger,
	}
}

// Analyze runs the full pipeline against root. The only fatal condition is
// the root being unreadable, returned as *IOError; findings and an
// unclassified result are normal outcomes, never errors.
func (r *Runner) Analyze(ctx context.Context, root string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := r.log.With(zap.String("run_id", runID), zap.String("root", root))

	fp, err := r.builder.Build(ctx, root)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var pathErr *fs.PathError
		path := root
		if errors.As(err, &pathErr) {
			path = pathErr.Path
		}
		return nil, &IOError{Stage: StageFingerprint, Path: path, Err: err}
	}
	log.Debug("fingerprint built",
		zap.Int("files", fp.TotalFiles),
		zap.Int("max_depth", fp.MaxDepth),
		zap.Bool("sampled", fp.Sampled),
		zap.Bool("partial_read", fp.PartialRead))

	cls := classify.Classify(fp, r.cat)
	log.Info("classified",
		zap.String("label", cls.Label),
		zap.String("band", cls.Band.String()),
		zap.Float64("confidence", cls.Confidence))

	var findings []finding.Finding
	findings = append(findings, compare.Compare(fp, cls, r.cat)...)
	findings = append(findings, antipattern.Detect(r.det, fp)...)

	recs := recommend.Prioritize(findings)
	log.Info("analysis complete",
		zap.Int("findings", len(findings)),
		zap.Int("recommendations", len(recs)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		RunID:           runID,
		Root:            root,
		StartedAt:       start,
		Duration:        time.Since(start),
		CatalogVersion:  r.cat.Version,
		Fingerprint:     fp,
		Classification:  cls,
		Findings:        findings,
		Recommendations: recs,
	}, nil
}
