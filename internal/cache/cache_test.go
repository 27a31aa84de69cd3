package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Title = "cached"
			return nil
		}
	}

	var first cachedPost
	err := Aside(ctx, PostKey(1), &first, PostTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached", first.Title)

	var second cachedPost
	err = Aside(ctx, PostKey(1), &second, PostTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second read must come from cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	var dest cachedPost
	wantErr := errors.New("db down")
	err := Aside(ctx, PostKey(2), &dest, PostTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, PostKey(2), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(3), cachedPost{ID: 3}, time.Minute))

	InvalidatePost(ctx, 3)

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpers_NilClientDegrade(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(4), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, PostKey(4), cachedPost{}, time.Minute))

	fetched := false
	err = Aside(ctx, PostKey(4), &dest, time.Minute, func() error {
		fetched = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, fetched, "without redis every read goes to the source")
}
