// Package main runs the robot rig in a terminal, steered with the mouse.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/config"
	"github.com/Faultbox/robostage/internal/logger"
	"github.com/Faultbox/robostage/internal/term"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The screen owns stdout, so logs only go to the file.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = "rigterm.log"
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// The particle backdrop has no terminal rendering.
	cfg.Effects.Whirlpool = false

	manager := assets.NewManager()
	for _, dir := range cfg.Assets.SearchPaths {
		if err := manager.AddSearchPath(dir); err != nil {
			logger.Warn("skipping asset path", zap.String("path", dir), zap.Error(err))
		}
	}
	defer manager.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Screen error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Screen error: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	host := term.NewHost(cfg, screen, assets.NewLoader(manager))
	host.Driver().OnLoadFailed = func(err error) {
		logger.Error("model failed to load", zap.Error(err))
	}
	host.Run(ctx)
}
