package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/repository"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/service"
)

type Handler struct {
	lookupService *service.LookupService
	cache         *repository.CandidateCache
}

func NewHandler(lookupService *service.LookupService, cache *repository.CandidateCache) *Handler {
	return &Handler{
		lookupService: lookupService,
		cache:         cache,
	}
}

// Lookup resolves the q parameter into a candidate list
func (h *Handler) Lookup(c *gin.Context) {
	raw := c.Query("q")

	result, err := h.lookupService.Lookup(c.Request.Context(), raw)
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidQuery})
			return
		}
		// Network and parse failures look the same to the caller. The
		// request-scoped logger already has the detail.
		service.NewLogger(c.Request.Context()).LogError("lookup_handler", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": msgLookupFailed})
		return
	}

	c.JSON(http.StatusOK, toLookupResponse(result))
}

// PurgeCache drops every locally cached candidate list
func (h *Handler) PurgeCache(c *gin.Context) {
	purged, err := h.cache.Purge(c.Request.Context())
	if err != nil {
		service.NewLogger(c.Request.Context()).LogError("purge_cache", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purge cache"})
		return
	}

	c.JSON(http.StatusOK, PurgeResponse{Purged: purged})
}
