// SPDX-License-Identifier: MIT

// Package batch runs independent per-item computations over a leading batch axis.
//
// Every item i is computed by fn(i) with no shared mutable state; results are
// written by index, so the output order never depends on scheduling. On failure
// the error of the LOWEST failing index is returned, wrapped in *ItemError.
package batch

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ErrPanic marks an item whose computation panicked.
var ErrPanic = errors.New("batch: item panicked")

// ItemError carries the index of the failing batch item.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("batch item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Option configures Run.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers caps the pool size; values < 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// Run calls fn(i) for every i in [0, n) and waits for all of them.
//
// Small batches (n < 2) or a single worker run inline on the caller goroutine;
// otherwise items are submitted to an ants pool sized min(workers, n).
func Run(n int, fn func(i int) error, opts ...Option) error {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if n <= 0 {
		return nil
	}

	errs := make([]error, n)
	if n == 1 || o.workers == 1 {
		for i := 0; i < n; i++ {
			errs[i] = safeCall(fn, i)
		}
		return firstError(errs)
	}

	size := o.workers
	if size > n {
		size = n
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return fmt.Errorf("batch: new pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		idx := i
		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()
			errs[idx] = safeCall(fn, idx)
		}); err != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("batch: submit: %w", err)
		}
	}
	wg.Wait()

	return firstError(errs)
}

func safeCall(fn func(i int) error, i int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return fn(i)
}

func firstError(errs []error) error {
	for i, err := range errs {
		if err != nil {
			return &ItemError{Index: i, Err: err}
		}
	}

	return nil
}
