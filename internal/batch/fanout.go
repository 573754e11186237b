// Package batch runs the per-email pipelines over lists of emails and
// derives aggregate statistics from the per-item results.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most limit calls in flight and
// returns the results in input order. A limit below 1 runs sequentially.
// If fn panics for an item, that item's result is onPanic(item, value) and
// the rest of the batch continues.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) R, onPanic func(T, any) R) []R {
	out := make([]R, len(items))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					out[i] = onPanic(item, r)
				}
			}()
			out[i] = fn(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
