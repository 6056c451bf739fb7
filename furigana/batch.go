package furigana

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jpnews/model"
)

// DefaultConcurrency bounds AnnotateAll when the caller passes n <= 0.
const DefaultConcurrency = 4

// AnnotateAll annotates texts concurrently, at most n at a time, and returns
// results in input order. The only error is a cancelled context; individual
// texts cannot fail.
func AnnotateAll(ctx context.Context, a *Annotator, texts []string, n int) ([]model.AnnotationResult, error) {
	if n <= 0 {
		n = DefaultConcurrency
	}
	results := make([]model.AnnotationResult, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns results[i].
			results[i] = a.Annotate(ctx, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
