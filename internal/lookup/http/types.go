package http

import (
	"time"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
)

type LookupResponse struct {
	Query      string    `json:"query"`
	Candidates []string  `json:"candidates"`
	Count      int       `json:"count"`
	Source     string    `json:"source"`
	FetchedAt  time.Time `json:"fetched_at"`
}

func toLookupResponse(r domain.Result) LookupResponse {
	return LookupResponse{
		Query:      r.Query,
		Candidates: r.Candidates,
		Count:      len(r.Candidates),
		Source:     string(r.Source),
		FetchedAt:  r.FetchedAt,
	}
}

type PurgeResponse struct {
	Purged int64 `json:"purged"`
}

// User-facing error messages. Raw upstream detail stays in the server
// log and never crosses this boundary.
const (
	msgInvalidQuery = "query is missing, too long or contains unsupported characters"
	msgLookupFailed = "lookup is temporarily unavailable, please try again"
)
