package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chatterly/pkg/async"

	"github.com/stretchr/testify/require"
)

type delivery struct {
	mu     sync.Mutex
	values map[string][]string
	errs   []error
}

func newDelivery() *delivery {
	return &delivery{values: map[string][]string{}}
}

func (d *delivery) to(key string) func(string, error) {
	return func(v string, err error) {
		d.mu.Lock()
		defer d.mu.Unlock()

		if err != nil {
			d.errs = append(d.errs, err)
			return
		}
		d.values[key] = append(d.values[key], v)
	}
}

func value(v string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		return v, nil
	}
}

// blocked returns a job that finishes with v once release is closed, or with
// the context error when cancelled first.
func blocked(v string, release <-chan struct{}) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		select {
		case <-release:
			return v, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func TestKeyedJobs_Deliver(t *testing.T) {
	t.Parallel()

	jobs := async.NewKeyedJobs[string, string]()
	d := newDelivery()

	jobs.Start(t.Context(), "a", value("a1"), d.to("a"))
	jobs.Start(t.Context(), "b", value("b1"), d.to("b"))

	require.NoError(t, jobs.Wait(t.Context()))
	require.Equal(t, map[string][]string{"a": {"a1"}, "b": {"b1"}}, d.values)
	require.Empty(t, jobs.Running())
}

func TestKeyedJobs_LastStartedWins(t *testing.T) {
	t.Parallel()

	jobs := async.NewKeyedJobs[string, string]()
	d := newDelivery()

	// The first job ignores cancellation and finishes after the second one.
	release := make(chan struct{})
	jobs.Start(t.Context(), "a", func(context.Context) (string, error) {
		<-release
		return "stale", nil
	}, d.to("a"))

	jobs.Start(t.Context(), "a", value("fresh"), d.to("a"))

	require.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.values["a"]) == 1
	}, time.Second, time.Millisecond)

	close(release)
	require.NoError(t, jobs.Wait(t.Context()))

	require.Equal(t, []string{"fresh"}, d.values["a"])
}

func TestKeyedJobs_Retain(t *testing.T) {
	t.Parallel()

	jobs := async.NewKeyedJobs[string, string]()
	d := newDelivery()
	release := make(chan struct{})

	jobs.Start(t.Context(), "a", blocked("a1", release), d.to("a"))
	jobs.Start(t.Context(), "b", blocked("b1", release), d.to("b"))

	jobs.Retain("b")
	require.Equal(t, []string{"b"}, jobs.Running())

	close(release)
	require.NoError(t, jobs.Wait(t.Context()))

	require.Equal(t, map[string][]string{"b": {"b1"}}, d.values)
	require.Empty(t, d.errs)
}

func TestKeyedJobs_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	jobs := async.NewKeyedJobs[string, string]()
	d := newDelivery()

	jobs.Start(t.Context(), "a", func(context.Context) (string, error) {
		return "", boom
	}, d.to("a"))

	require.NoError(t, jobs.Wait(t.Context()))
	require.Equal(t, []error{boom}, d.errs)
}

func TestKeyedJobs_WaitContext(t *testing.T) {
	t.Parallel()

	jobs := async.NewKeyedJobs[string, string]()
	release := make(chan struct{})
	defer close(release)

	jobs.Start(t.Context(), "a", func(context.Context) (string, error) {
		<-release
		return "", nil
	}, newDelivery().to("a"))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, jobs.Wait(ctx), context.DeadlineExceeded)
}

func TestKeyedJobs_StopAll(t *testing.T) {
	t.Parallel()

	jobs := async.NewKeyedJobs[string, string]()
	d := newDelivery()

	jobs.Start(t.Context(), "a", blocked("a1", make(chan struct{})), d.to("a"))
	jobs.StopAll()

	require.NoError(t, jobs.Wait(t.Context()))
	require.Empty(t, d.values)
	require.Empty(t, d.errs)
}
