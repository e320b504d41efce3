package utils

import (
	"context"
	"sync"
)

type outcome[T any] struct {
	value T
	err   error
}

// completionRelay turns a one-shot completion callback into a value a
// caller can wait on. Only the first Complete is delivered.
type completionRelay[T any] struct {
	once sync.Once
	ch   chan outcome[T]
}

func newCompletionRelay[T any]() *completionRelay[T] {
	return &completionRelay[T]{ch: make(chan outcome[T], 1)}
}

// Complete records the result and reports whether it was the first delivery.
// It never blocks, even after the waiter has gone away.
func (r *completionRelay[T]) Complete(value T, err error) bool {
	delivered := false
	r.once.Do(func() {
		r.ch <- outcome[T]{value: value, err: err}
		delivered = true
	})
	return delivered
}

// Wait blocks until Complete is called or ctx is done.
func (r *completionRelay[T]) Wait(ctx context.Context) (T, error) {
	select {
	case o := <-r.ch:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// awaitCompletion runs start with a completion callback and waits for it.
func awaitCompletion[T any](ctx context.Context, start func(complete func(T, error))) (T, error) {
	r := newCompletionRelay[T]()
	start(func(value T, err error) { r.Complete(value, err) })
	return r.Wait(ctx)
}
