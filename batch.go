package moon

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Source is one named unit of input for CompileAll.
type Source struct {
	Name string
	Code string
}

// Result is the outcome of compiling one Source.
type Result struct {
	Name   string
	Output string
	Err    error
}

// CompileAll compiles independent sources concurrently, using at most the
// number of workers configured with WithWorkers. Results are returned in
// input order. Each source is compiled with its Name as the filename.
//
// The returned error aggregates every failed source, each prefixed with the
// source name. Sources not yet started when ctx is done fail with the
// context's error.
func CompileAll(ctx context.Context, sources []Source, opts ...Option) ([]Result, error) {
	o := collectOptions(opts...)
	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, src := range sources {
		results[i].Name = src.Name
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			unit := *o
			unit.filename = src.Name
			stages, err := compile(src.Code, &unit)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Output = stages.Output
			return nil
		})
	}
	_ = g.Wait()

	var merr *multierror.Error
	failed := 0
	for i, r := range results {
		if r.Err == nil {
			continue
		}
		failed++
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("source %d", i)
		}
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, r.Err))
	}
	o.logger.Debug().
		Int("sources", len(sources)).
		Int("failed", failed).
		Msg("batch compiled")
	return results, merr.ErrorOrNil()
}
