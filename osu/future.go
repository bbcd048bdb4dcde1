package osu

import "context"

// Future is the result of an asynchronous request. The body is fully
// buffered and decoded before the future completes.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	val    T
	err    error
}

func newFuture[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer cancel()
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Wait blocks until the request completes.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Done is closed once Wait would no longer block.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel aborts the request if it is still in flight and releases its
// connection. Wait then reports an error matching context.Canceled. Calling
// Cancel after completion has no effect.
func (f *Future[T]) Cancel() {
	f.cancel()
}
