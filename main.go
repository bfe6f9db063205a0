package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rosterd/rosterd/handlers"
	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/database"
	personhandler "github.com/rosterd/rosterd/internal/person/handler"
	"github.com/rosterd/rosterd/internal/person/service"
	"github.com/rosterd/rosterd/internal/person/store"
	"github.com/rosterd/rosterd/internal/storage"
	"github.com/rosterd/rosterd/pkg/logger"
	"github.com/rosterd/rosterd/pkg/metrics"
	"github.com/rosterd/rosterd/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: store=%s redis=%v", cfg.Store.Backend, cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Connect to Redis early so the rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(ctx).Err(); err == nil {
			logger.Infof("Connected to Redis for optional features: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		}
	}
	// Optional global rate limiter (per client IP)
	if cfg.RateLimit.Enabled {
		// use Redis-backed limiter when configured and Redis client is available
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Open the document store. The whole collection is loaded once at startup
	// and rewritten on every mutation.
	personStore, mongoClient, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open person store: %v", err)
	}
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(ctx) }()
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		// storage readiness: the document store is loaded during startup, so
		// reaching this handler means it is available
		deps["storage"] = personStore != nil
		if !deps["storage"] {
			ready = false
		}

		// Redis readiness when used for the rate-limiter
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = importedRedis != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// Register person CRUD routes + Swagger UI/JSON for API documentation
	personhandler.RegisterPersonRoutes(r, service.New(personStore))
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting person service on %s (store=%s)", addr, cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// openStore builds the configured storage backend and loads the document.
// The returned mongo client is non-nil only for the mongo backend so the
// caller can disconnect it on shutdown.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, *mongo.Client, error) {
	switch cfg.Store.Backend {
	case "mongo":
		if cfg.MongoDB.URI == "" {
			return nil, nil, fmt.Errorf("STORE_BACKEND=mongo requires MONGODB_URI")
		}
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			return nil, nil, fmt.Errorf("connect mongo after %d attempts: %w", maxAttempts, errConn)
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		st, err := store.Open(ctx, store.NewMongoBackend(col))
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return st, client, nil
	case "minio":
		ms, err := storage.NewMinIOStorage(storage.LoadMinIOConfig())
		if err != nil {
			return nil, nil, err
		}
		st, err := store.Open(ctx, store.NewMinIOBackend(ms, cfg.Store.Key))
		return st, nil, err
	default:
		st, err := store.Open(ctx, store.NewFileBackend(cfg.Store.Path))
		return st, nil, err
	}
}
