// Package app wires configuration, storage, and services into the HTTP router.
package app

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/Madhulr/to-do-Bend/handlers"
	"github.com/Madhulr/to-do-Bend/internal/activity"
	"github.com/Madhulr/to-do-Bend/internal/cache"
	"github.com/Madhulr/to-do-Bend/internal/config"
	"github.com/Madhulr/to-do-Bend/internal/feedback"
	"github.com/Madhulr/to-do-Bend/internal/store"
	"github.com/Madhulr/to-do-Bend/internal/todos"
	"github.com/Madhulr/to-do-Bend/pkg/logger"
	"github.com/Madhulr/to-do-Bend/pkg/metrics"
	"github.com/Madhulr/to-do-Bend/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg     *config.Config
	store   store.Store
	redis   *redis.Client
	router  *gin.Engine
	started time.Time
}

// New opens the configured store and, when REDIS_HOST is set, a Redis client
// for the activity cache and the shared rate limiter. An unreachable Redis is
// logged and skipped; an unreachable store is fatal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	a := &App{cfg: cfg, store: st, started: time.Now()}

	if addr := cfg.Redis.Addr(); addr != "" {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warnf("redis unavailable at %s, continuing without cache: %v", addr, err)
		} else {
			a.redis = rdb
			logger.Infof("connected to redis at %s", addr)
		}
	}

	a.router = a.newRouter()
	logger.Infof("app ready: store=%s redis=%v rate_limit=%v", cfg.Store.Backend, a.redis != nil, cfg.RateLimit.Enabled)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return a.store.Close(ctx)
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (a *App) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(a.cfg.CORS)))
	r.Use(middleware.Caller())

	if rl := a.cfg.RateLimit; rl.Enabled {
		if rl.UseRedis && a.redis != nil {
			r.Use(middleware.RedisRateLimitMiddleware(a.redis, rl.RPS, rl.Burst, time.Duration(rl.WindowSeconds)*time.Second))
		} else {
			r.Use(middleware.RateLimitMiddleware(rl.RPS, rl.Burst))
		}
	}

	// A nil *ActivityCache must not reach the services as a non-nil interface.
	var (
		inv todos.Invalidator
		ac  activity.Cache
	)
	if a.redis != nil {
		c := cache.NewActivityCache(a.redis, a.cfg.Cache.ActivityTTL)
		inv, ac = c, c
	}

	todoH := handlers.NewTodoHandler(todos.NewService(a.store, inv))
	feedbackH := handlers.NewFeedbackHandler(feedback.NewService(a.store))
	activityH := handlers.NewActivityHandler(activity.NewService(a.store, a.store, ac))

	handlers.RegisterRoot(r)
	for _, rg := range []*gin.RouterGroup{r.Group("/"), r.Group("/api")} {
		todoH.Register(rg)
		feedbackH.Register(rg)
		activityH.Register(rg)
	}
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", a.ready)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}
	return cc
}

// ready returns 200 only when the store answers and, if configured, Redis does too.
func (a *App) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ok := true
	deps := map[string]bool{}

	deps["store"] = a.store.Ping(ctx) == nil
	ok = ok && deps["store"]

	if a.cfg.Redis.Addr() != "" {
		deps["redis"] = a.redis != nil && a.redis.Ping(ctx).Err() == nil
		ok = ok && deps["redis"]
	}

	body := gin.H{"deps": deps, "uptime": time.Since(a.started).String()}
	if !ok {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ready"
	c.JSON(http.StatusOK, body)
}
