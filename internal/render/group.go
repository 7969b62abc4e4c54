package render

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunGroups calls fn for every item, starting at most limit calls together
// and waiting for the whole group to return before starting the next one.
//
// A failing or panicking call does not stop its siblings or later groups;
// a panic is returned as that item's error. Once ctx is done no further
// group is started and the remaining items get ctx.Err().
// The returned slice holds the error of each item by index.
func RunGroups[T any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) error) []error {
	if limit < 1 {
		limit = 1
	}

	errs := make([]error, len(items))
	for start := 0; start < len(items); start += limit {
		if err := ctx.Err(); err != nil {
			for i := start; i < len(items); i++ {
				errs[i] = err
			}
			break
		}

		end := min(start+limit, len(items))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				errs[i] = recovered(func() error { return fn(ctx, items[i]) })
				return nil // Continue with other jobs
			})
		}
		g.Wait()
	}

	return errs
}

// recovered calls fn and turns a panic into an error.
func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
