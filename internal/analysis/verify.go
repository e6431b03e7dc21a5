package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/nuckage/internal/reaction"
)

// VerifyAll validates independent chains concurrently with at most workers
// goroutines. The returned slice holds each chain's Validate result in
// input order; the error is non-nil only when ctx is done first.
func VerifyAll(ctx context.Context, chains []*reaction.Chain, workers int) ([]error, error) {
	results := make([]error, len(chains))
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range chains {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = c.Validate()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AllValid reports whether every entry of a VerifyAll result is nil.
func AllValid(results []error) bool {
	for _, err := range results {
		if err != nil {
			return false
		}
	}
	return true
}
