package mealdb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchSize(t *testing.T) {
	p := DefaultRandomPolicy

	tests := []struct {
		have, want, expect int
	}{
		{have: 0, want: 9, expect: 9},
		{have: 5, want: 9, expect: 7},
		{have: 8, want: 9, expect: 4},
		{have: 0, want: 2, expect: 5},
		{have: 0, want: 30, expect: 9},
		{have: 9, want: 9, expect: 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.have, tt.want), func(t *testing.T) {
			assert.Equal(t, tt.expect, p.BatchSize(tt.have, tt.want))
		})
	}
}

func TestDone(t *testing.T) {
	p := DefaultRandomPolicy

	assert.False(t, p.Done(0, 9, 0))
	assert.True(t, p.Done(9, 9, 1))
	assert.True(t, p.Done(3, 9, 50))
	assert.False(t, p.Done(3, 9, 49))
}

func TestCollectStopsAtMaxAttempts(t *testing.T) {
	p := RandomPolicy{MaxAttempts: 4, Overfetch: 3, MaxBatch: 9}
	attempts := 0

	got, err := p.Collect(context.Background(), 9, func(_ context.Context, n int) ([]Recipe, error) {
		attempts++
		return []Recipe{{ID: "same"}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, attempts)
	assert.Len(t, got, 1)
}

func TestCollectTruncatesOverfetch(t *testing.T) {
	next := 0
	got, err := DefaultRandomPolicy.Collect(context.Background(), 2, func(_ context.Context, n int) ([]Recipe, error) {
		out := make([]Recipe, n)
		for i := range out {
			next++
			out[i] = Recipe{ID: fmt.Sprint(next)}
		}
		return out, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestCollectAbortsOnDrawError(t *testing.T) {
	boom := errors.New("boom")
	_, err := DefaultRandomPolicy.Collect(context.Background(), 9, func(context.Context, int) ([]Recipe, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestCollectHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DefaultRandomPolicy.Collect(ctx, 9, func(context.Context, int) ([]Recipe, error) {
		t.Fatal("draw should not run")
		return nil, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollectZeroWant(t *testing.T) {
	got, err := DefaultRandomPolicy.Collect(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
