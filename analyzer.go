package bzlconfig

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-bzlconfig/analysis"
	"github.com/albertocavalcante/go-bzlconfig/label"
	"github.com/albertocavalcante/go-bzlconfig/xcode"
)

// UnitFunc analyzes a single target.
type UnitFunc func(ctx context.Context, target label.Label) error

// Analyzer runs independent per-target analyses in parallel.
//
// A failing target is recorded and the others keep going. Cancellation stops
// the whole run.
type Analyzer struct {
	maxConcurrency int
	logger         *slog.Logger
}

// NewAnalyzer returns an Analyzer configured by opts.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		maxConcurrency: cfg.maxConcurrency,
		logger:         cfg.log(),
	}, nil
}

// Run calls fn once per target. Errors returned by fn are collected in the
// returned Reporter, keyed by target. If the run is interrupted, the error is
// returned and the Reporter holds only the failures seen so far.
func (a *Analyzer) Run(ctx context.Context, targets []label.Label, fn UnitFunc) (*analysis.Reporter, error) {
	reporter := analysis.NewReporter()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)

	for _, target := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := analysis.CheckInterrupt(gctx); err != nil {
				return err
			}
			err := fn(gctx, target)
			if analysis.IsInterrupted(err) {
				return err
			}
			if reporter.Report(target, err) {
				a.logger.Debug("target failed", "target", target.String(), "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reporter, err
	}
	if err := analysis.CheckInterrupt(ctx); err != nil {
		return reporter, err
	}
	return reporter, nil
}

// XcodeConfigs resolves several xcode_config targets against the same flags.
// Targets that fail to resolve are reported; the others are returned by label.
func (a *Analyzer) XcodeConfigs(ctx context.Context, env analysis.Environment, configs []label.Label, flags xcode.Flags) (map[label.Label]*xcode.Config, *analysis.Reporter, error) {
	var mu sync.Mutex
	results := make(map[label.Label]*xcode.Config, len(configs))

	reporter, err := a.Run(ctx, configs, func(ctx context.Context, target label.Label) error {
		f := flags
		f.XcodeVersionConfig = target.String()
		cfg, err := ResolveXcodeConfig(ctx, env, f, WithLogger(a.logger))
		if err != nil {
			return err
		}
		mu.Lock()
		results[target] = cfg
		mu.Unlock()
		return nil
	})
	return results, reporter, err
}
