package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/app"
	"github.com/memalihaider/techverse-portal/internal/export"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var csvPath = flag.String("csv", "", "Write a one-shot CSV export to this path and exit")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	if *csvPath != "" {
		regs, err := service.Store.ListRegistrations("", "")
		if err != nil {
			logger.Error.Fatalf("Failed to list registrations: %v", err)
		}

		f, err := os.Create(*csvPath)
		if err != nil {
			logger.Error.Fatalf("Failed to create %s: %v", *csvPath, err)
		}
		defer f.Close()

		if err := export.WriteRegistrations(f, regs); err != nil {
			logger.Error.Fatalf("Failed to write CSV: %v", err)
		}
		logger.Info.Printf("Wrote %d registrations to %s", len(regs), *csvPath)
		return
	}

	exporter, err := export.NewGSheetExporter(service)
	if err != nil {
		logger.Error.Fatalf("Failed to initialize Google Sheets exporter: %v", err)
	}
	defer exporter.Stop()

	logger.Info.Println("Leaderboard exporter running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info.Println("Leaderboard exporter stopped")
}
