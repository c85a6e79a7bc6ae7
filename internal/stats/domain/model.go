package domain

import "time"

// Lookup outcome constants
const (
	OutcomeHit           = "hit"            // served from the local cache
	OutcomeProxyHit      = "proxy_hit"      // served by the secondary caching endpoint
	OutcomeMiss          = "miss"           // fetched from the dictionary, candidates found
	OutcomeEmpty         = "empty"          // fetched from the dictionary, zero candidates
	OutcomeInvalid       = "invalid"        // rejected before any network call
	OutcomeUpstreamError = "upstream_error" // dictionary unreachable, timed out or 5xx
	OutcomeParseError    = "parse_error"    // dictionary response not in expected shape
)

// TermStat represents a per-term hit count by outcome.
type TermStat struct {
	Term       string    `json:"term"`
	Outcome    string    `json:"outcome"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// TermCount aggregates all outcomes for one term.
type TermCount struct {
	Term       string    `json:"term"`
	Lookups    int64     `json:"lookups"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
