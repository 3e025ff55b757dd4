// Package main is the entry point for the robostage desktop viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/config"
	"github.com/Faultbox/robostage/internal/logger"
	"github.com/Faultbox/robostage/internal/stage"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== robostage ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := stage.New(cfg)
	if err != nil {
		logger.Error("failed to create stage", zap.Error(err))
		os.Exit(1)
	}
	defer s.Close()

	if err := s.Run(ctx); err != nil {
		logger.Error("stage error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("stage closed normally")
}
