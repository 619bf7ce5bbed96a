package main

import (
	"context"
	"flag"
	"os"

	"KnowledgeBase/internal/app"
	"KnowledgeBase/internal/config"
	"KnowledgeBase/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (default: $KB_CONFIG)")
		serve      = flag.Bool("serve", false, "start the live-edit helper instead of a single pass")
		addr       = flag.String("addr", "", "helper listen address (overrides config)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load(*configPath)
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if *serve {
		if err := application.Serve(*addr); err != nil {
			logger.Error("helper stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("enrichment aborted", "error", err)
		os.Exit(1)
	}
}
