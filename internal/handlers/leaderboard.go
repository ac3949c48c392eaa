package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/app"
)

type LeaderboardHandler struct {
	service *app.Service
}

func NewLeaderboardHandler(service *app.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
	}
}

// HandleLeaderboard serves the live ranking. No auth: access codes gate
// actions, not the scoreboard.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Leaderboard()
	if err != nil {
		logger.Error.Printf("Failed to build leaderboard: %v", err)
		http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"rows": rows,
	}); err != nil {
		logger.Error.Printf("Failed to encode leaderboard: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
