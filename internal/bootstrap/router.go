package bootstrap

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/puzzelhulp/woordzoeker-backend/config"
	httpapi "github.com/puzzelhulp/woordzoeker-backend/internal/api/http"
	"github.com/puzzelhulp/woordzoeker-backend/internal/api/http/middleware"
	lookuphttp "github.com/puzzelhulp/woordzoeker-backend/internal/lookup/http"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/repository"
	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/service"
	statshttp "github.com/puzzelhulp/woordzoeker-backend/internal/stats/http"
	statsrepo "github.com/puzzelhulp/woordzoeker-backend/internal/stats/repository"
)

type RouterDeps struct {
	Config *config.Config
	Redis  *redis.Client
	DB     *sql.DB // nil when stats are disabled
}

// Components are the wired services BuildRouter constructs, returned so
// main can hand them to the warmer.
type Components struct {
	LookupService *service.LookupService
	Cache         *repository.CandidateCache
	Stats         *statsrepo.TermRepository // nil when stats are disabled
}

func BuildRouter(dep RouterDeps) (*gin.Engine, *Components) {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.Server.AllowOrigins))

	healthHandler := httpapi.NewHealthHandler("woordzoeker-backend", cfg.App.Version, dep.Redis, dep.DB)
	healthHandler.RegisterRoutes(r)

	cache := repository.NewCandidateCache(dep.Redis)
	upstream := service.NewUpstreamClient(
		cfg.Upstream.DictionaryURL,
		cfg.Upstream.CacheProxyURL,
		cfg.Lookup.DictionaryTimeout,
		cfg.Lookup.ProxyTimeout,
	)

	var statsRepo *statsrepo.TermRepository
	var recorder service.StatsRecorder
	if dep.DB != nil {
		statsRepo = statsrepo.NewTermRepository(dep.DB)
		recorder = statsRepo
	}

	lookupService := service.NewLookupService(upstream, cache, recorder, cfg.Lookup)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	admin := api.Group("/admin")
	admin.Use(middleware.APIKeyMiddleware(cfg.App.APIKey))

	lookuphttp.NewHandler(lookupService, cache).Register(api, admin)

	var statsStore statshttp.TermStatsStore
	if statsRepo != nil {
		statsStore = statsRepo
	}
	statshttp.NewHandler(statsStore).Register(admin)

	return r, &Components{
		LookupService: lookupService,
		Cache:         cache,
		Stats:         statsRepo,
	}
}

func corsMiddleware(allowOrigins string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-Id", "X-API-Key"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if allowOrigins == "*" || allowOrigins == "" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(allowOrigins, ",")
	}
	return cors.New(corsCfg)
}
