package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Check is a single named readiness probe.
type Check func(ctx context.Context) error

// HealthService defines the interface for checking application health
type HealthService interface {
	Liveness(ctx context.Context) error
	// Readiness runs every registered check and reports per-check status.
	Readiness(ctx context.Context) (map[string]string, bool)
}

type healthService struct {
	checks map[string]Check
	logger *slog.Logger
}

// NewHealthService creates a health service over the given readiness checks.
func NewHealthService(checks map[string]Check, logger *slog.Logger) HealthService {
	l := logger.With("layer", "service", "component", "healthService")
	return &healthService{checks: checks, logger: l}
}

func (s *healthService) Liveness(ctx context.Context) error {
	s.logger.Debug("Liveness check passed")
	return nil
}

func (s *healthService) Readiness(ctx context.Context) (map[string]string, bool) {
	// Use a timeout to prevent the health check from hanging
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			status[name] = fmt.Sprintf("error: %s", err.Error())
			ready = false
			s.logger.Warn("Readiness check failed", slog.String("check", name), slog.Any("error", err))
			continue
		}
		status[name] = "ok"
	}
	return status, ready
}
