package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danielgremista/ecoview-server/internal/logging"
	"github.com/danielgremista/ecoview-server/internal/repository"
	"github.com/danielgremista/ecoview-server/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

func (s *Server) requestLogger(c *gin.Context) *zap.Logger {
	return logging.WithRequestID(s.logger, c.GetString(requestIDKey))
}

// handleReceive is the ingestion endpoint. Validation failures come
// back as 400 with the failure detail; an alias that stayed
// unreachable after the default fallback is 503; anything else is a
// generic 500 with the detail logged server-side only.
func (s *Server) handleReceive(c *gin.Context) {
	logger := s.requestLogger(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.metrics.IngestFailed(telemetry.KindMalformedPayload.String())
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "failed to read request body",
		})
		return
	}

	result, err := s.ingest.ProcessIngest(c.Request.Context(), body)
	if err != nil {
		s.respondIngestError(c, logger, err)
		return
	}

	s.metrics.ReadingPersisted(result.Target.String())
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Data saved successfully",
		"id":        result.ID,
		"timestamp": result.Timestamp.Format(time.RFC3339),
	})
}

func (s *Server) respondIngestError(c *gin.Context, logger *zap.Logger, err error) {
	if te, ok := telemetry.AsError(err); ok {
		s.metrics.IngestFailed(te.Kind.String())
		switch te.Kind {
		case telemetry.KindStoreUnavailable:
			logger.Error("ingest store unavailable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"message": te.Message,
			})
		default:
			logger.Warn("ingest rejected",
				zap.String("kind", te.Kind.String()),
				zap.String("reason", te.Message))
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": te.Message,
			})
		}
		return
	}

	s.metrics.IngestFailed(telemetry.KindInternal.String())
	logger.Error("ingest failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "internal server error",
	})
}

// handleLatest returns the most recent generic reading in the compact
// shape the dashboard widgets poll for.
func (s *Server) handleLatest(c *gin.Context) {
	reading, err := s.ingest.Latest(c.Request.Context())
	if errors.Is(err, repository.ErrNoReadings) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "no readings recorded",
		})
		return
	}
	if err != nil {
		s.requestLogger(c).Error("latest reading query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sensor1":   reading.Sensor1,
		"sensor2":   reading.Sensor2,
		"timestamp": reading.Timestamp.Format("15:04"),
		"battery":   reading.BatteryLevel,
	})
}

type accessRequest struct {
	UID string `json:"uid"`
}

// handleAccess checks an RFID card uid and records the attempt.
func (s *Server) handleAccess(c *gin.Context) {
	var req accessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "uid is required",
		})
		return
	}

	authorized, err := s.access.Check(c.Request.Context(), req.UID)
	if err != nil {
		s.requestLogger(c).Error("access check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"autorizado": authorized})
}
