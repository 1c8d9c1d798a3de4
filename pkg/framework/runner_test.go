package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerCollectsErrors(t *testing.T) {
	errFailed := errors.New("failed")
	r := NewRunner()
	r.Go(
		NamedRun("failing", RunFunc(func(context.Context) error { return errFailed })),
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	)
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, errFailed))
	require.Contains(t, err.Error(), "failing")
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	r.Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestRunnerWaitTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	r := NewRunner()
	r.Go(RunFunc(func(context.Context) error {
		<-block
		return nil
	}))
	r.Stop()
	start := time.Now()
	err := r.WaitTimeout(20 * time.Millisecond)
	require.True(t, errors.Is(err, ErrShutdownTimeout))
	require.True(t, time.Since(start) < time.Second)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	unblock := make(chan struct{})
	var closed int
	closer := closerFunc(func() error {
		closed++
		close(unblock)
		return nil
	})
	time.AfterFunc(10*time.Millisecond, cancel)
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closed)
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	errA, errB := errors.New("a"), errors.New("b")
	errs.Add(errA)
	require.Equal(t, "a", errs.Error())
	errs.Add(errB)
	require.Equal(t, "Multiple errors:\na\nb", errs.Error())
	require.True(t, errors.Is(errs.Aggregate(), errB))
}
