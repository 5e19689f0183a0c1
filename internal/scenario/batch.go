package scenario

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs scenarios concurrently on at most workers goroutines. Reports
// are returned in the order of scenarios. The first failure cancels the
// remaining runs.
//
// Precondition: workers >= 1.
// Postcondition: Returns one Report per scenario, or the first error.
func RunAll(ctx context.Context, r *Runner, scenarios []*Scenario, workers int) ([]*Report, error) {
	reports := make([]*Report, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, s := range scenarios {
		g.Go(func() error {
			report, err := r.Run(ctx, s)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
