package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cadence/configs"
	"cadence/delivery/rest"
	"cadence/delivery/rest/middleware"
)

// Server wraps the gin engine
type Server struct {
	engine     *gin.Engine
	config     configs.ServerConfig
	httpServer *http.Server
}

// NewServer creates a new HTTP server around the given handler
func NewServer(cfg configs.ServerConfig, h *rest.Handler, logger *zap.Logger) *Server {
	engine := gin.New()
	engine.Use(middleware.Logger(logger.Named("http")))
	engine.Use(middleware.Recovery(logger.Named("http")))
	engine.Use(middleware.CORS())

	s := &Server{engine: engine, config: cfg}
	s.registerRoutes(engine, h)
	return s
}

func (s *Server) registerRoutes(engine *gin.Engine, h *rest.Handler) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/tasks", h.CreateTask)
		v1.GET("/tasks", h.ListTasks)
		v1.GET("/tasks/:id", h.GetTask)
		v1.POST("/tasks/:id/reschedule", h.RescheduleTask)
		v1.POST("/tasks/:id/complete", h.CompleteTask)
		v1.DELETE("/tasks/:id", h.CancelTask)
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address(),
		Handler: s.engine,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
