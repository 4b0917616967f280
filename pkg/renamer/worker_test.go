package renamer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker(t *testing.T) {
	t.Run("tasks run in submission order", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := NewWorker(4)
		w.Start(ctx)

		for i := 1; i <= 3; i++ {
			i := i
			require.NoError(t, w.Submit(func(context.Context) (any, error) {
				return i, nil
			}))
		}

		var results []Result
		require.Eventually(t, func() bool {
			results = append(results, w.Drain()...)
			return len(results) == 3
		}, time.Second, 5*time.Millisecond)

		assert.Equal(t, 1, results[0].Value)
		assert.Equal(t, 2, results[1].Value)
		assert.Equal(t, 3, results[2].Value)
	})

	t.Run("task errors surface in the result", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := NewWorker(1)
		w.Start(ctx)

		require.NoError(t, w.Submit(func(context.Context) (any, error) {
			return nil, assert.AnError
		}))

		var results []Result
		require.Eventually(t, func() bool {
			results = append(results, w.Drain()...)
			return len(results) == 1
		}, time.Second, 5*time.Millisecond)
		assert.ErrorIs(t, results[0].Err, assert.AnError)
	})

	t.Run("full queue rejects new tasks", func(t *testing.T) {
		w := NewWorker(1)
		// not started, so the first task stays queued
		require.NoError(t, w.Submit(func(context.Context) (any, error) { return nil, nil }))
		assert.ErrorIs(t, w.Submit(func(context.Context) (any, error) { return nil, nil }), ErrQueueFull)
	})

	t.Run("cancellation stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		w := NewWorker(1)
		w.Start(ctx)
		cancel()
		w.Wait()
	})
}
