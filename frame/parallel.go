package frame

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultRowsPerTask is the number of rows handed to a worker at a time when
// no chunk size is given
const DefaultRowsPerTask = 16

// ParallelRows splits the row range [from, to) into chunks of rowsPerTask
// rows and calls fn for each chunk on up to workers goroutines.  fn must only
// write to locations belonging to its own rows.  A workers value below one
// uses GOMAXPROCS.
func ParallelRows(from, to, workers, rowsPerTask int, fn func(from, to int)) {

	if to <= from {
		return
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	if rowsPerTask < 1 {
		rowsPerTask = DefaultRowsPerTask
	}

	if workers == 1 {
		fn(from, to)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for start := from; start < to; start += rowsPerTask {
		start, end := start, min(start+rowsPerTask, to)

		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}

	// workers never return errors
	_ = g.Wait()
}
