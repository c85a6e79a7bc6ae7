package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Redis     string    `json:"redis,omitempty"`
	DB        string    `json:"db,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	rdb         *redis.Client
	db          *sql.DB
}

func NewHealthHandler(serviceName, version string, rdb *redis.Client, db *sql.DB) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		rdb:         rdb,
		db:          db,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	redisStatus := "disabled"
	if h.rdb != nil {
		if err := h.rdb.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	dbStatus := "disabled"
	if h.db != nil {
		if err := h.db.PingContext(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Redis:     redisStatus,
		DB:        dbStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
