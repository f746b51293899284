package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tomz197/shipdrift/internal/config"
	"github.com/tomz197/shipdrift/internal/desktop"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(os.Stderr, "desktop")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	settings, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	g, err := desktop.New(settings, logger)
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}
	if err := desktop.Run(g); err != nil {
		if errors.Is(err, desktop.ErrNoWindow) {
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/desktop` or build with `-tags ebiten`.")
			os.Exit(2)
		}
		logger.Fatal("game failed", "err", err)
	}
}
