package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/puzzelhulp/woordzoeker-backend/internal/stats/domain"
)

const defaultTopLimit = 20

// TermStatsStore is what the handlers need from the stats repository.
type TermStatsStore interface {
	TopTerms(ctx context.Context, limit int) ([]domain.TermCount, error)
	TermOutcomes(ctx context.Context, term string) ([]domain.TermStat, error)
}

type Handler struct {
	store TermStatsStore // nil when no stats database is configured
}

func NewHandler(store TermStatsStore) *Handler {
	return &Handler{store: store}
}

// TopTerms lists the most-queried terms, busiest first
func (h *Handler) TopTerms(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats are not enabled"})
		return
	}

	limit := defaultTopLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	terms, err := h.store.TopTerms(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"terms": terms})
}

// TermOutcomes lists the per-outcome counters for one term
func (h *Handler) TermOutcomes(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats are not enabled"})
		return
	}

	term := c.Param("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	outcomes, err := h.store.TermOutcomes(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"term": term, "outcomes": outcomes})
}

// Register mounts the stats routes on the admin group.
func (h *Handler) Register(admin gin.IRouter) {
	admin.GET("/stats/top", h.TopTerms)
	admin.GET("/stats/terms/:term", h.TermOutcomes)
}
