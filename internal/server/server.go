package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgremista/ecoview-server/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP front end: the ingestion endpoint, the
// latest-reading view, the RFID access check and the health/metrics
// plumbing.
type Server struct {
	engine  *gin.Engine
	httpSrv *http.Server
	ingest  *service.IngestService
	access  *service.AccessService
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer wires the gin engine and routes.
func NewServer(ingest *service.IngestService, access *service.AccessService, metrics *Metrics, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		engine:  engine,
		ingest:  ingest,
		access:  access,
		metrics: metrics,
		logger:  logger,
	}

	engine.Use(s.requestID())
	engine.Use(s.recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	{
		api.POST("/receive/", s.handleReceive)
		api.GET("/latest/", s.handleLatest)
		api.POST("/access/", s.handleAccess)
	}

	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"status":  "error",
			"message": "Invalid request method",
		})
	})
}

// requestID assigns a uuid to every request and echoes it back so
// device logs can be correlated with server logs.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// recovery turns panics into a generic 500. The stack goes to the log
// only; the response body never carries internal detail.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err interface{}) {
		s.requestLogger(c).Error("panic recovered", zap.Any("panic", err), zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal server error",
		})
	})
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving on the given port. It returns once the listener
// goroutine is launched; startup errors surface through the logger.
func (s *Server) Start(port int) {
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", zap.Error(err))
		}
	}()
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}
