package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
)

func setupCache(t *testing.T) (*CandidateCache, *miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCandidateCache(client), mr, client
}

func sampleResult(query string, candidates ...string) domain.Result {
	return domain.Result{
		Query:      query,
		Candidates: candidates,
		Source:     domain.SourceDictionary,
		FetchedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestCandidateCache_PutGet(t *testing.T) {
	cache, _, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleResult("kat", "kater", "katje"), time.Hour))

	got, err := cache.Get(ctx, "kat")
	require.NoError(t, err)
	assert.Equal(t, "kat", got.Query)
	assert.Equal(t, []string{"kater", "katje"}, got.Candidates)
	// Served entries always report the local cache as their source.
	assert.Equal(t, domain.SourceCache, got.Source)
}

func TestCandidateCache_MissIsErrNotCached(t *testing.T) {
	cache, _, _ := setupCache(t)

	_, err := cache.Get(context.Background(), "hond")
	assert.ErrorIs(t, err, domain.ErrNotCached)
}

func TestCandidateCache_EntryExpires(t *testing.T) {
	cache, mr, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleResult("kat", "kater"), time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "kat")
	assert.ErrorIs(t, err, domain.ErrNotCached)
}

func TestCandidateCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr, _ := setupCache(t)

	mr.Set("wz:lookup:kat", "{not json")

	_, err := cache.Get(context.Background(), "kat")
	assert.ErrorIs(t, err, domain.ErrNotCached)
}

func TestCandidateCache_PurgeLeavesOtherKeysAlone(t *testing.T) {
	cache, mr, client := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, sampleResult("kat", "kater"), time.Hour))
	require.NoError(t, cache.Put(ctx, sampleResult("hond", "teckel"), time.Hour))
	mr.Set("other:key", "keep me")

	purged, err := cache.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	_, err = cache.Get(ctx, "kat")
	assert.ErrorIs(t, err, domain.ErrNotCached)

	val, err := client.Get(ctx, "other:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep me", val)
}
