package async

import (
	"context"
)

type JobHandle[T any] struct {
	cancel func()
	done   chan Result[T]
}

// Job runs job in a goroutine with a context derived from ctx. Stop cancels
// that context, the job decides how fast it returns.
func Job[T any](ctx context.Context, job func(ctx context.Context) (T, error)) *JobHandle[T] {
	ctx, cancel := context.WithCancel(ctx)
	handle := JobHandle[T]{
		cancel: cancel,
		done:   make(chan Result[T], 1),
	}

	go func() {
		defer cancel()

		res, err := job(ctx)

		handle.done <- NewResult(res, err)
	}()

	return &handle
}

func (j *JobHandle[T]) Stop() {
	j.cancel()
}

// Wait returns the job result. It must be called at most once.
func (j *JobHandle[T]) Wait() (T, error) {
	return (<-j.done).Unpack()
}
