package warm

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/service"
	statsdomain "github.com/puzzelhulp/woordzoeker-backend/internal/stats/domain"
)

const runTimeout = 5 * time.Minute

// TopTermsSource supplies the terms worth keeping warm.
type TopTermsSource interface {
	TopTerms(ctx context.Context, limit int) ([]statsdomain.TermCount, error)
}

// Scheduler refreshes the cache entries of the most-queried terms on a
// cron spec, so popular lookups rarely fall out of the local cache and
// hit the dictionary during the day.
type Scheduler struct {
	c       *cron.Cron
	lookups *service.LookupService
	terms   TopTermsSource
	topN    int
	spec    string
}

func NewScheduler(lookups *service.LookupService, terms TopTermsSource, topN int, spec string) *Scheduler {
	return &Scheduler{
		lookups: lookups,
		terms:   terms,
		topN:    topN,
		spec:    spec,
	}
}

// Start registers the warm job. No-op when there is no stats source to
// tell us what is popular.
func (s *Scheduler) Start() {
	if s.terms == nil || s.topN <= 0 {
		log.Println("[warm] cache warmer disabled (no stats source)")
		return
	}

	s.c = cron.New(cron.WithSeconds())
	if _, err := s.c.AddFunc(s.spec, s.runOnce); err != nil {
		log.Printf("[warm] failed to register cron job: %v", err)
		return
	}
	s.c.Start()
	log.Printf("[warm] cache warmer scheduled (spec=%q top=%d)", s.spec, s.topN)
}

// Stop halts the cron loop. In-flight refreshes finish on their own.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

func (s *Scheduler) runOnce() {
	jobID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	terms, err := s.terms.TopTerms(ctx, s.topN)
	if err != nil {
		log.Printf("[warm] job=%s failed to load top terms: %v", jobID, err)
		return
	}

	refreshed := 0
	for _, tc := range terms {
		if ctx.Err() != nil {
			break
		}
		if _, err := s.lookups.Refresh(ctx, tc.Term); err != nil {
			log.Printf("[warm] job=%s refresh failed term=%q: %v", jobID, tc.Term, err)
			continue
		}
		refreshed++
	}

	log.Printf("[warm] job=%s refreshed %d/%d terms in %s", jobID, refreshed, len(terms), time.Since(start))
}
