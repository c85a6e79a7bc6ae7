package http

import "github.com/gin-gonic/gin"

// Register mounts the public lookup route on api and the cache admin
// route on admin (the caller guards admin with the API-key middleware).
func (h *Handler) Register(api gin.IRouter, admin gin.IRouter) {
	api.GET("/lookup", h.Lookup)
	admin.POST("/cache/purge", h.PurgeCache)
}
