package service

import (
	"context"
	"errors"
	"time"

	"github.com/puzzelhulp/woordzoeker-backend/config"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
	statsdomain "github.com/puzzelhulp/woordzoeker-backend/internal/stats/domain"
)

// invalidTerm is the stats placeholder for rejected queries.
const invalidTerm = "(invalid)"

// CandidateCache is the local result cache consulted before any outbound
// call is made.
type CandidateCache interface {
	Get(ctx context.Context, query string) (domain.Result, error)
	Put(ctx context.Context, result domain.Result, ttl time.Duration) error
}

// StatsRecorder records per-term lookup outcomes. Recording is
// best-effort; a failing recorder never fails a lookup.
type StatsRecorder interface {
	Record(ctx context.Context, term, outcome string) error
}

// LookupService implements the lookup contract: validate, consult the
// local cache, then the optional caching endpoint, then the primary
// dictionary. The dictionary is authoritative; the caching endpoint only
// exists to shed load, so its failures fall through silently.
type LookupService struct {
	upstream *UpstreamClient
	cache    CandidateCache
	stats    StatsRecorder // nil disables recording
	cfg      config.LookupConfig
}

// NewLookupService creates a new lookup service. stats may be nil.
func NewLookupService(upstream *UpstreamClient, cache CandidateCache, stats StatsRecorder, cfg config.LookupConfig) *LookupService {
	return &LookupService{
		upstream: upstream,
		cache:    cache,
		stats:    stats,
		cfg:      cfg,
	}
}

// Lookup resolves a raw user query into an ordered candidate list.
// Invalid queries fail before any network call. Zero candidates is a
// successful, cacheable result.
func (s *LookupService) Lookup(ctx context.Context, raw string) (domain.Result, error) {
	logger := NewLogger(ctx)

	query := domain.NormalizeQuery(raw)
	if err := domain.ValidateQuery(query, s.cfg.MaxQueryLen); err != nil {
		// Rejected input is unbounded and unvetted; it never reaches
		// the stats store as a term, only a fixed placeholder does.
		s.record(ctx, invalidTerm, statsdomain.OutcomeInvalid)
		return domain.Result{}, err
	}

	cached, err := s.cache.Get(ctx, query)
	if err == nil {
		s.record(ctx, query, statsdomain.OutcomeHit)
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotCached) {
		logger.LogWarnf("lookup", "cache read failed for query=%q: %v", query, err)
	}

	if s.upstream.HasCacheProxy() {
		if words, err := s.upstream.FetchProxy(ctx, query); err == nil {
			result := s.store(ctx, query, words, domain.SourceProxy)
			s.record(ctx, query, statsdomain.OutcomeProxyHit)
			return result, nil
		} else {
			// The dictionary remains authoritative; fall through.
			logger.LogWarnf("lookup", "cache proxy failed for query=%q: %v", query, err)
		}
	}

	return s.fetchDictionary(ctx, query)
}

// Refresh re-fetches a query from upstream and rewrites the local cache
// entry, skipping the local cache read. Used by the nightly warmer.
func (s *LookupService) Refresh(ctx context.Context, raw string) (domain.Result, error) {
	query := domain.NormalizeQuery(raw)
	if err := domain.ValidateQuery(query, s.cfg.MaxQueryLen); err != nil {
		return domain.Result{}, err
	}
	return s.fetchDictionary(ctx, query)
}

func (s *LookupService) fetchDictionary(ctx context.Context, query string) (domain.Result, error) {
	words, err := s.upstream.FetchDictionary(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrBadUpstreamResponse) {
			s.record(ctx, query, statsdomain.OutcomeParseError)
		} else {
			s.record(ctx, query, statsdomain.OutcomeUpstreamError)
		}
		return domain.Result{}, err
	}

	result := s.store(ctx, query, words, domain.SourceDictionary)
	if len(words) == 0 {
		s.record(ctx, query, statsdomain.OutcomeEmpty)
	} else {
		s.record(ctx, query, statsdomain.OutcomeMiss)
	}
	return result, nil
}

func (s *LookupService) store(ctx context.Context, query string, words []string, source domain.Source) domain.Result {
	if words == nil {
		words = []string{}
	}
	result := domain.Result{
		Query:      query,
		Candidates: words,
		Source:     source,
		FetchedAt:  time.Now().UTC(),
	}

	ttl := s.cfg.CacheTTL
	if len(words) == 0 {
		// Empty answers expire sooner: the dictionary grows.
		ttl = s.cfg.EmptyTTL
	}
	if err := s.cache.Put(ctx, result, ttl); err != nil {
		NewLogger(ctx).LogWarnf("lookup", "cache write failed for query=%q: %v", query, err)
	}
	return result
}

func (s *LookupService) record(ctx context.Context, term, outcome string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Record(ctx, term, outcome); err != nil {
		NewLogger(ctx).LogWarnf("lookup", "stats record failed for term=%q: %v", term, err)
	}
}
