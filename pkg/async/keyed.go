package async

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

type keyedJob[T any] struct {
	id     uint64
	handle *JobHandle[T]
}

// KeyedJobs runs at most one live job per key. Starting a job for a key
// cancels the one already running for it, and only the most recently started
// job of a key gets its result delivered.
type KeyedJobs[K comparable, T any] struct {
	mu      sync.Mutex
	seq     uint64
	jobs    map[K]keyedJob[T]
	pending map[uint64]chan struct{}
}

func NewKeyedJobs[K comparable, T any]() *KeyedJobs[K, T] {
	return &KeyedJobs[K, T]{
		jobs:    map[K]keyedJob[T]{},
		pending: map[uint64]chan struct{}{},
	}
}

// Start launches job for key. deliver is called once the job returns, unless
// the job was superseded or cancelled in the meantime. deliver runs with the
// set locked and must not call back into it.
func (k *KeyedJobs[K, T]) Start(ctx context.Context, key K, job func(context.Context) (T, error), deliver func(T, error)) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.seq++
	id := k.seq

	if prev, ok := k.jobs[key]; ok {
		prev.handle.Stop()
	}

	handle := Job(ctx, job)
	settled := make(chan struct{})

	k.jobs[key] = keyedJob[T]{id: id, handle: handle}
	k.pending[id] = settled

	go func() {
		res, err := handle.Wait()

		k.mu.Lock()
		defer k.mu.Unlock()
		defer close(settled)

		delete(k.pending, id)

		current, ok := k.jobs[key]
		if !ok || current.id != id {
			return
		}
		delete(k.jobs, key)

		deliver(res, err)
	}()
}

// Retain cancels and forgets the jobs of every key not listed.
func (k *KeyedJobs[K, T]) Retain(keys ...K) {
	keep := lo.Associate(keys, func(key K) (K, bool) {
		return key, true
	})

	k.mu.Lock()
	defer k.mu.Unlock()

	for key, job := range k.jobs {
		if !keep[key] {
			job.handle.Stop()
			delete(k.jobs, key)
		}
	}
}

func (k *KeyedJobs[K, T]) StopAll() {
	k.Retain()
}

// Running returns the keys that have a live job.
func (k *KeyedJobs[K, T]) Running() []K {
	k.mu.Lock()
	defer k.mu.Unlock()

	return lo.Keys(k.jobs)
}

// Wait blocks until every job started so far has settled, delivered or not.
func (k *KeyedJobs[K, T]) Wait(ctx context.Context) error {
	k.mu.Lock()
	pending := lo.Values(k.pending)
	k.mu.Unlock()

	for _, settled := range pending {
		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
