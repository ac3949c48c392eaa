package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/app"
	"github.com/memalihaider/techverse-portal/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	regHandler := handlers.NewRegistrationHandler(service)
	portalHandler := handlers.NewPortalHandler(service)
	boardHandler := handlers.NewLeaderboardHandler(service)

	http.HandleFunc("POST /api/v1/registrations", regHandler.HandleCreate)
	http.HandleFunc("GET /api/v1/registrations", regHandler.HandleList)
	http.HandleFunc("GET /api/v1/registrations/export", regHandler.HandleExportCSV)
	http.HandleFunc("GET /api/v1/registrations/{id}", regHandler.HandleGet)
	http.HandleFunc("GET /api/v1/registrations/{id}/evaluations", regHandler.HandleEvaluations)
	http.HandleFunc("PATCH /api/v1/registrations/{id}/status", regHandler.HandleDecision)
	http.HandleFunc("DELETE /api/v1/registrations/{id}", regHandler.HandleDelete)

	http.HandleFunc("POST /api/v1/portal/login", portalHandler.HandleLogin)
	http.HandleFunc("POST /api/v1/portal/team", portalHandler.HandleMyTeam)
	http.HandleFunc("POST /api/v1/portal/phase", portalHandler.HandlePhase)
	http.HandleFunc("POST /api/v1/portal/evaluations", portalHandler.HandleEvaluation)

	http.HandleFunc("GET /api/v1/leaderboard", boardHandler.HandleLeaderboard)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting techverse portal on %s", service.Config.Server.Port)
	logger.Debug.Println("Requiring admin headers:")
	for _, h := range service.Config.API.AdminHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Techverse portal server failed: %v", err)
	}
}
