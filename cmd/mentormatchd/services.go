// File path: cmd/mentormatchd/services.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/novachain/mentormatch/internal/common/process"
	"github.com/novachain/mentormatch/internal/vector"
)

// startIndexService launches a local chroma server when one is installed,
// so development machines get a working vector index without any manual
// setup. A missing binary is not an error: matching degrades to the
// in-memory fallback.
func startIndexService(ctx context.Context, cfg vector.Config, logger *slog.Logger) (*process.ManagedService, error) {
	binary, err := process.BinaryPath("chroma")
	if err != nil {
		logger.Info("mentormatch: chroma binary not found, skipping local index launch", "error", err)
		return nil, nil
	}
	svc, err := process.Start(ctx, process.ServiceConfig{
		Name:          "vector-index",
		Command:       binary,
		Args:          []string{"run", "--host", cfg.Host, "--port", cfg.Port},
		ReadyURL:      fmt.Sprintf("%s://%s:%s/api/v1/heartbeat", cfg.Scheme, cfg.Host, cfg.Port),
		ReadyTimeout:  45 * time.Second,
		ReadyInterval: time.Second,
		StopTimeout:   10 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func stopIndexService(ctx context.Context, svc *process.ManagedService, logger *slog.Logger) {
	if svc == nil {
		return
	}
	if err := svc.Stop(ctx); err != nil {
		logger.Warn("mentormatch: index service shutdown failed", "error", err)
	}
}
