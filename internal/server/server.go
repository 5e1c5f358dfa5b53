package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinayakfood/website/backend/config"
	"github.com/vinayakfood/website/backend/internal/api"
	"github.com/vinayakfood/website/backend/internal/database"
	"github.com/vinayakfood/website/backend/internal/middleware"
	"github.com/vinayakfood/website/backend/internal/router"
	"github.com/vinayakfood/website/backend/internal/service"
	"github.com/vinayakfood/website/backend/internal/storage"
)

// Deps are the infrastructure clients the server is built on. Redis is optional.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store service.ObjectStore
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	deps   Deps
	logger *zap.Logger
}

// New connects to the database, redis and object storage named in cfg,
// applies migrations, and wires the API.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			// Sign-out and rate limiting degrade to per-process state without redis
			log.Warn("redis unavailable, using in-memory session revocation", zap.Error(err))
			redisClient = nil
		}
	}

	store, err := newObjectStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return NewWithDeps(cfg, Deps{DB: db, Redis: redisClient, Store: store}, log), nil
}

func newObjectStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.ObjectStore, error) {
	switch cfg.Storage.Driver {
	case "memory":
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%s/uploads", cfg.Server.Port)
		}
		log.Warn("using in-memory image storage; uploads are lost on restart")
		return storage.NewMemoryStore(baseURL), nil
	default:
		store, err := storage.NewS3Store(ctx, cfg.Storage, storage.WithLogger(log.Named("s3")))
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		return store, nil
	}
}

// NewWithDeps wires services and handlers onto already-open infrastructure
func NewWithDeps(cfg *config.Config, deps Deps, log *zap.Logger) *Server {
	var blacklist service.TokenBlacklist = service.NewMemoryTokenBlacklist()
	var loginLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		blacklist = service.NewRedisTokenBlacklist(deps.Redis)
		loginLimiter = middleware.NewLoginRateLimiter(deps.Redis, cfg.LoginRateLimit.Limit, cfg.LoginRateLimit.Window, log)
	}

	authService := service.NewAuthService(deps.DB, cfg.JWT, blacklist, log)
	dishService := service.NewDishService(deps.DB, authService, log)
	contentService := service.NewMenuContentService(deps.DB, authService, cfg.Content, log)
	projector := service.NewMenuProjector(dishService, contentService, cfg.Content)
	imageService := service.NewImageService(deps.Store, authService, cfg.Storage.MaxUploadBytes, log)

	engine := router.SetupRouter(cfg.Server, log, router.Handlers{
		Health:    api.NewHealthHandler(deps.DB),
		Auth:      api.NewAuthHandler(authService, loginLimiter, cfg.Env == config.Production),
		Dishes:    api.NewDishHandler(dishService, authService),
		Menu:      api.NewMenuHandler(projector, contentService, authService),
		Images:    api.NewImageHandler(imageService, authService, cfg.Storage.MaxUploadBytes),
		Dashboard: api.NewDashboardHandler(dishService, authService),
	})

	if mem, ok := deps.Store.(*storage.MemoryStore); ok {
		engine.GET("/uploads/*key", serveMemoryObject(mem))
	}

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		deps:   deps,
		logger: log,
	}
}

func serveMemoryObject(store *storage.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj, ok := store.Get(strings.TrimPrefix(c.Param("key"), "/"))
		if !ok {
			c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "object not found"})
			return
		}
		c.Data(http.StatusOK, obj.ContentType, obj.Data)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database and redis clients
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if s.deps.DB != nil {
		if err := database.Close(s.deps.DB); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}
