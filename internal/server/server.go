package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mutual-aid/config"
	"mutual-aid/internal/handler"
	"mutual-aid/internal/middleware"
	"mutual-aid/internal/redis"
	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"
	"mutual-aid/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Requests    *handler.RequestHandler
	Chat        *handler.ChatHandler
	Attachments *handler.AttachmentHandler
}

// Dependencies are the cross-cutting pieces the router needs besides the
// handlers. Limiter may be nil when Redis is not configured.
type Dependencies struct {
	Sessions *services.SessionService
	Limiter  *redis.RateLimiter
	Health   func(ctx context.Context) error
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, deps Dependencies) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware(s.config.CORSOrigins))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))
	s.engine.Use(middleware.SessionMiddleware(deps.Sessions))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	var authLimit, messageLimit gin.HandlerFunc = passThrough, passThrough
	if deps.Limiter != nil {
		authLimit = middleware.AuthRateLimitMiddleware(deps.Limiter)
		messageLimit = middleware.MessageRateLimitMiddleware(deps.Limiter)
	}

	users := s.engine.Group("/users")
	{
		users.POST("/register", authLimit, handlers.Auth.Register)
		users.POST("/login", authLimit, handlers.Auth.Login)
		users.GET("/:id", handlers.Users.GetByID)
	}

	requests := s.engine.Group("/requests")
	{
		requests.POST("", handlers.Requests.Create)
		requests.GET("", handlers.Requests.List)
		requests.GET("/:id", handlers.Requests.GetByID)
		requests.PUT("/:id", handlers.Requests.Update)
		requests.DELETE("/:id", handlers.Requests.Delete)
		requests.POST("/:id/attachments", handlers.Attachments.Presign)
	}

	chat := s.engine.Group("/chat")
	{
		chat.POST("", messageLimit, handlers.Chat.Post)
		chat.GET("/:requestId", handlers.Chat.List)
		chat.GET("/:requestId/availability", handlers.Chat.Availability)
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
