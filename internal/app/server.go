// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tigerbites_backend/internal/auth"
	"tigerbites_backend/internal/config"
	"tigerbites_backend/internal/group"
	"tigerbites_backend/internal/jobs"
	"tigerbites_backend/internal/middleware"
	"tigerbites_backend/internal/restaurant"
	"tigerbites_backend/internal/review"
	"tigerbites_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	userHandler       *user.Handler
	authHandler       *auth.Handler
	restaurantHandler *restaurant.Handler
	reviewHandler     *review.Handler
	groupHandler      *group.Handler

	// Jobs
	sessionCleanupJob *jobs.SessionCleanupJob

	// Middleware instances
	sessionMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authService auth.Service,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	restaurantHandler *restaurant.Handler,
	reviewHandler *review.Handler,
	groupHandler *group.Handler,
	sessionCleanupJob *jobs.SessionCleanupJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	sessionMW := middleware.SessionAuth(authService, cfg, logger.Named("SessionAuth"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "TigerBites API is healthy!"})
	})

	api := router.Group("/api")

	authHandler.RegisterRoutes(api, router)
	userHandler.RegisterRoutes(api, sessionMW)
	restaurantHandler.RegisterRoutes(api, sessionMW)
	reviewHandler.RegisterRoutes(api, sessionMW)
	groupHandler.RegisterRoutes(api, sessionMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:        httpServer,
		router:            router,
		cfg:               cfg,
		logger:            logger,
		userHandler:       userHandler,
		authHandler:       authHandler,
		restaurantHandler: restaurantHandler,
		reviewHandler:     reviewHandler,
		groupHandler:      groupHandler,
		sessionCleanupJob: sessionCleanupJob,
		sessionMW:         sessionMW,
	}, nil
}

func (s *Server) Start() error {
	if s.sessionCleanupJob != nil {
		if err := s.sessionCleanupJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start session cleanup job", zap.Error(err))
		}
	} else {
		s.logger.Info("Session cleanup job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.sessionCleanupJob != nil {
		s.sessionCleanupJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
