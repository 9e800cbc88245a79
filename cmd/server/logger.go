package main

import (
	"github.com/danielgremista/ecoview-server/internal/config"
	"github.com/danielgremista/ecoview-server/internal/logging"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName)
}
