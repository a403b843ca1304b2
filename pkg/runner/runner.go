package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/clikemode/internal/logging"
	"github.com/yaklabco/clikemode/pkg/pipeline"
)

// Runner feeds discovered files through a pipeline with bounded
// concurrency.
type Runner struct {
	Pipeline *pipeline.Pipeline
}

// New creates a Runner around p.
func New(p *pipeline.Pipeline) *Runner {
	return &Runner{Pipeline: p}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in path order regardless of completion order.
// Files that were never started because ctx ended are left out.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Each task owns one slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))
	started := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		started[i] = true
		group.Go(func() error {
			outcomes[i] = r.process(ctx, path, opts.Pipeline)
			return nil
		})
	}
	_ = group.Wait() // tasks report failures in their outcome

	for i, outcome := range outcomes {
		if started[i] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts pipeline.Options) FileOutcome {
	ctx = logging.WithFile(ctx, path)
	res, err := r.Pipeline.ProcessFile(ctx, path, opts)
	if err != nil {
		logging.FromContext(ctx).Debug("processing failed", logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}
	return FileOutcome{Path: path, Result: res}
}
