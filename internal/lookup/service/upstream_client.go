package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/parser"
)

// UpstreamClient handles communication with the primary dictionary
// endpoint and the optional secondary caching endpoint. One outbound GET
// per endpoint per invocation; no retries, no backoff.
type UpstreamClient struct {
	dictionaryURL string
	cacheProxyURL string
	dictClient    *http.Client
	proxyClient   *http.Client
}

// NewUpstreamClient creates a new upstream client. cacheProxyURL may be
// empty, in which case FetchProxy must not be called. A non-positive
// timeout falls back to the package default for that endpoint.
func NewUpstreamClient(dictionaryURL, cacheProxyURL string, dictTimeout, proxyTimeout time.Duration) *UpstreamClient {
	if dictTimeout <= 0 {
		dictTimeout = DefaultDictionaryTimeout
	}
	if proxyTimeout <= 0 {
		proxyTimeout = DefaultProxyTimeout
	}
	return &UpstreamClient{
		dictionaryURL: dictionaryURL,
		cacheProxyURL: cacheProxyURL,
		dictClient: &http.Client{
			Timeout: dictTimeout,
		},
		proxyClient: &http.Client{
			Timeout: proxyTimeout,
		},
	}
}

// HasCacheProxy reports whether a secondary caching endpoint is configured.
func (c *UpstreamClient) HasCacheProxy() bool {
	return c.cacheProxyURL != ""
}

// FetchDictionary fetches candidate words for a query from the primary
// dictionary endpoint. The response is an HTML result page; candidates
// are extracted from it in page order.
func (c *UpstreamClient) FetchDictionary(ctx context.Context, query string) ([]string, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	reqURL, err := lookupURL(c.dictionaryURL, "woord", query)
	if err != nil {
		return nil, fmt.Errorf("build dictionary URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.dictClient.Do(req)
	if err != nil {
		logger.LogError("fetch_dictionary", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// The dictionary 404s on terms it has never seen; that is a
		// legitimate zero-match answer, not a failure.
		return []string{}, nil
	case resp.StatusCode != http.StatusOK:
		logger.LogWarnf("fetch_dictionary", "dictionary returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: dictionary status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	candidates, err := parser.ParseCandidates(io.LimitReader(resp.Body, MaxUpstreamBody))
	if err != nil {
		logger.LogError("fetch_dictionary", err)
		return nil, err
	}

	logger.LogInfof("fetch_dictionary", "query=%q candidates=%d latency=%s", query, len(candidates), time.Since(start))
	return candidates, nil
}

// proxyResponse mirrors the JSON this service itself serves on /lookup,
// so woordzoeker instances can chain to each other.
type proxyResponse struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
}

// FetchProxy fetches candidate words from the secondary caching endpoint.
func (c *UpstreamClient) FetchProxy(ctx context.Context, query string) ([]string, error) {
	logger := NewLogger(ctx)

	reqURL, err := lookupURL(c.cacheProxyURL, "q", query)
	if err != nil {
		return nil, fmt.Errorf("build proxy URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.proxyClient.Do(req)
	if err != nil {
		logger.LogError("fetch_proxy", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.LogWarnf("fetch_proxy", "cache proxy returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: cache proxy status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body proxyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxUpstreamBody)).Decode(&body); err != nil {
		logger.LogError("fetch_proxy", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrBadUpstreamResponse, err)
	}
	if body.Candidates == nil {
		body.Candidates = []string{}
	}
	return body.Candidates, nil
}

func lookupURL(base, param, query string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(param, query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
