package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"sentipulse/internal/config"
	"sentipulse/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	dataCfg   config.DataConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, dataCfg config.DataConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		dataCfg:   dataCfg,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns the liveness status with runtime information
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
	}
}

// ReadinessCheck reports whether both input files are present. The service
// is not ready to serve dashboard data without them.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Services:  make(map[string]interface{}),
	}

	for name, path := range map[string]string{
		"sentiment_file": s.dataCfg.SentimentFile,
		"trades_file":    s.dataCfg.TradesFile,
	} {
		if _, err := os.Stat(path); err != nil {
			status.Status = "not_ready"
			status.Services[name] = fmt.Sprintf("missing: %s", path)
			continue
		}
		status.Services[name] = "ok"
	}

	if status.Status != "ready" {
		s.logger.WarnContext(ctx, "readiness check failed",
			slog.Any("services", status.Services))
	}

	return status
}

// Version returns build information
func (s *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
