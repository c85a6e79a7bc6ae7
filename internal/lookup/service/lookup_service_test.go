package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzelhulp/woordzoeker-backend/config"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/repository"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
	return client, mr
}

func testLookupConfig() config.LookupConfig {
	return config.LookupConfig{
		MaxQueryLen: 64,
		CacheTTL:    12 * time.Hour,
		EmptyTTL:    15 * time.Minute,
	}
}

type recordedOutcome struct {
	Term    string
	Outcome string
}

type fakeRecorder struct {
	events []recordedOutcome
}

func (f *fakeRecorder) Record(_ context.Context, term, outcome string) error {
	f.events = append(f.events, recordedOutcome{Term: term, Outcome: outcome})
	return nil
}

func TestLookup_DictionaryMissThenCacheHit(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(resultPage))
	}))
	defer server.Close()

	rec := &fakeRecorder{}
	svc := NewLookupService(NewUpstreamClient(server.URL, "", 0, 0), repository.NewCandidateCache(client), rec, testLookupConfig())

	result, err := svc.Lookup(context.Background(), " Kat ")
	require.NoError(t, err)
	assert.Equal(t, "kat", result.Query)
	assert.Equal(t, []string{"kater", "katje"}, result.Candidates)
	assert.Equal(t, domain.SourceDictionary, result.Source)

	// Second lookup of the same query is served locally.
	result, err = svc.Lookup(context.Background(), "kat")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCache, result.Source)
	assert.Equal(t, []string{"kater", "katje"}, result.Candidates)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))

	require.Len(t, rec.events, 2)
	assert.Equal(t, recordedOutcome{"kat", "miss"}, rec.events[0])
	assert.Equal(t, recordedOutcome{"kat", "hit"}, rec.events[1])
}

func TestLookup_InvalidQueryMakesNoNetworkCall(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer server.Close()

	svc := NewLookupService(NewUpstreamClient(server.URL, server.URL, 0, 0), repository.NewCandidateCache(client), nil, testLookupConfig())

	_, err := svc.Lookup(context.Background(), "kat;drop")
	assert.ErrorIs(t, err, domain.ErrQueryInvalid)
	assert.EqualValues(t, 0, atomic.LoadInt64(&calls))

	tooLong := make([]byte, 100)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	_, err = svc.Lookup(context.Background(), string(tooLong))
	assert.ErrorIs(t, err, domain.ErrQueryTooLong)
	assert.EqualValues(t, 0, atomic.LoadInt64(&calls))
}

func TestLookup_RejectedQueryNotPersistedVerbatim(t *testing.T) {
	client, _ := setupTestRedis(t)

	rec := &fakeRecorder{}
	svc := NewLookupService(NewUpstreamClient("http://127.0.0.1:1", "", 0, 0), repository.NewCandidateCache(client), rec, testLookupConfig())

	garbage := "<script>alert(1)</script>" + string(make([]byte, 300))
	_, err := svc.Lookup(context.Background(), garbage)
	require.Error(t, err)

	// The raw query must never become a stats key; only the fixed
	// placeholder is recorded.
	require.Len(t, rec.events, 1)
	assert.Equal(t, "(invalid)", rec.events[0].Term)
	assert.Equal(t, "invalid", rec.events[0].Outcome)
}

func TestLookup_ProxyPreferredOverDictionary(t *testing.T) {
	client, _ := setupTestRedis(t)

	var dictCalls int64
	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&dictCalls, 1)
		w.Write([]byte(resultPage))
	}))
	defer dict.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":"kat","candidates":["poes"]}`))
	}))
	defer proxy.Close()

	svc := NewLookupService(NewUpstreamClient(dict.URL, proxy.URL, 0, 0), repository.NewCandidateCache(client), nil, testLookupConfig())

	result, err := svc.Lookup(context.Background(), "kat")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceProxy, result.Source)
	assert.Equal(t, []string{"poes"}, result.Candidates)
	assert.EqualValues(t, 0, atomic.LoadInt64(&dictCalls))
}

func TestLookup_ProxyFailureFallsThroughToDictionary(t *testing.T) {
	client, _ := setupTestRedis(t)

	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultPage))
	}))
	defer dict.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer proxy.Close()

	svc := NewLookupService(NewUpstreamClient(dict.URL, proxy.URL, 0, 0), repository.NewCandidateCache(client), nil, testLookupConfig())

	result, err := svc.Lookup(context.Background(), "kat")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceDictionary, result.Source)
	assert.Equal(t, []string{"kater", "katje"}, result.Candidates)
}

func TestLookup_DictionaryDownIsUpstreamError(t *testing.T) {
	client, _ := setupTestRedis(t)

	rec := &fakeRecorder{}
	svc := NewLookupService(NewUpstreamClient("http://127.0.0.1:1", "", 0, 0), repository.NewCandidateCache(client), rec, testLookupConfig())

	_, err := svc.Lookup(context.Background(), "kat")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "upstream_error", rec.events[0].Outcome)
}

func TestLookup_ParseFailureIsParseError(t *testing.T) {
	client, _ := setupTestRedis(t)

	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>storing</p></body></html>`))
	}))
	defer dict.Close()

	rec := &fakeRecorder{}
	svc := NewLookupService(NewUpstreamClient(dict.URL, "", 0, 0), repository.NewCandidateCache(client), rec, testLookupConfig())

	_, err := svc.Lookup(context.Background(), "kat")
	assert.ErrorIs(t, err, domain.ErrBadUpstreamResponse)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "parse_error", rec.events[0].Outcome)
}

func TestLookup_EmptyResultIsNotAnError(t *testing.T) {
	client, mr := setupTestRedis(t)

	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><ul class="results"></ul></body></html>`))
	}))
	defer dict.Close()

	rec := &fakeRecorder{}
	svc := NewLookupService(NewUpstreamClient(dict.URL, "", 0, 0), repository.NewCandidateCache(client), rec, testLookupConfig())

	result, err := svc.Lookup(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.NotNil(t, result.Candidates)
	assert.Empty(t, result.Candidates)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "empty", rec.events[0].Outcome)

	// Empty answers get the short TTL: after it lapses the entry is gone.
	mr.FastForward(16 * time.Minute)
	_, err = repository.NewCandidateCache(client).Get(context.Background(), "xyzzy")
	assert.ErrorIs(t, err, domain.ErrNotCached)
}

func TestRefresh_BypassesLocalCacheRead(t *testing.T) {
	client, _ := setupTestRedis(t)

	var calls int64
	dict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(resultPage))
	}))
	defer dict.Close()

	svc := NewLookupService(NewUpstreamClient(dict.URL, "", 0, 0), repository.NewCandidateCache(client), nil, testLookupConfig())

	_, err := svc.Lookup(context.Background(), "kat")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), "kat")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
}
