package docstore

import (
	"context"

	"golang.org/x/sync/errgroup"

	"matchminded-service/internal/domain"
)

// Writer persists a single document.
type Writer interface {
	WriteDocument(ctx context.Context, req domain.WriteRequest) error
}

// Seed writes every request through w with at most concurrency writes in flight.
// One result per request is delivered on the returned channel, which is closed
// once all writes have finished. A failed write does not stop the others.
func Seed(ctx context.Context, w Writer, reqs []domain.WriteRequest, concurrency int) <-chan domain.WriteResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make(chan domain.WriteResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for _, req := range reqs {
			req := req
			g.Go(func() error {
				results <- domain.WriteResult{Request: req, Err: w.WriteDocument(gctx, req)}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()
	return results
}
