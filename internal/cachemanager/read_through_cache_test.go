package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type renderInput struct {
	Seq   int
	Width int
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	manager := NewInMemoryCacheManager[string, renderedRow]("row-cache", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	cache := NewReadThroughCache[string, renderedRow, renderInput](
		manager,
		func(ctx context.Context, input renderInput) (renderedRow, error) {
			calls++
			return renderedRow{Seq: input.Seq}, nil
		},
		true,
	)

	for i := 0; i < 3; i++ {
		row, err := cache.Get(context.Background(), "row:1:80", renderInput{Seq: 1, Width: 80}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, renderedRow{Seq: 1}, row)
	}
	require.Equal(t, 3, calls, "disabled cache must call the loader every time")

	require.Zero(t, manager.Count(), "disabled cache must not populate the store")
}

func TestReadThroughCache_Get_PopulatesAndServesFromCache(t *testing.T) {
	manager := NewInMemoryCacheManager[string, renderedRow]("row-cache", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	cache := NewReadThroughCache[string, renderedRow, renderInput](
		manager,
		func(ctx context.Context, input renderInput) (renderedRow, error) {
			calls++
			return renderedRow{Seq: input.Seq, Lines: "rendered"}, nil
		},
		false,
	)

	first, err := cache.Get(context.Background(), "row:7:80", renderInput{Seq: 7, Width: 80}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	second, err := cache.Get(context.Background(), "row:7:80", renderInput{Seq: 7, Width: 80}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "second lookup must hit the cache")
	require.Equal(t, first, second)
}

func TestReadThroughCache_Get_LoaderErrorNotCached(t *testing.T) {
	manager := NewInMemoryCacheManager[string, renderedRow]("row-cache", DefaultExpiration, DefaultCleanupInterval)

	boom := errors.New("render failed")
	cache := NewReadThroughCache[string, renderedRow, renderInput](
		manager,
		func(ctx context.Context, input renderInput) (renderedRow, error) {
			return renderedRow{}, boom
		},
		false,
	)

	_, err := cache.Get(context.Background(), "row:0:80", renderInput{}, time.Minute)
	require.ErrorIs(t, err, boom)
	require.Zero(t, manager.Count(), "errors must not be cached")
}
