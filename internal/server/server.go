package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vitaplan/backend/config"
	"github.com/vitaplan/backend/internal/api"
	"github.com/vitaplan/backend/internal/middleware"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/pkg/logger"
)

// Server wraps the HTTP server and its router.
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// New builds the router with all routes registered. The Redis client may be
// nil; the server then runs without drafts and rate limiting.
func New(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	llmService service.LLMServiceInterface,
	log *logger.Logger,
) *Server {
	if config.GetEnvironment() == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	authService := service.NewAuthService(db, cfg.JWTSecret)
	api.RegisterRoutes(router, db, redisClient, authService, llmService, log)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		log: log,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Infow("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
