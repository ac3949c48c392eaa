package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/app"
	"github.com/memalihaider/techverse-portal/internal/metrics"
	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/phases"
	"github.com/memalihaider/techverse-portal/internal/store"
	"github.com/memalihaider/techverse-portal/internal/team"
)

// PortalHandler serves the Business Innovation participant portal: login,
// phase progression and evaluation submission.
type PortalHandler struct {
	service *app.Service
}

func NewPortalHandler(service *app.Service) *PortalHandler {
	return &PortalHandler{
		service: service,
	}
}

type credentials struct {
	Email      string `json:"email"`
	AccessCode string `json:"access_code"`
}

func clientKey(r *http.Request, email string) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host + ":" + email
}

func (h *PortalHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Auth.AllowRequest(r.Context(), clientKey(r, creds.Email)); err != nil {
		if errors.Is(err, app.ErrRateLimited) {
			http.Error(w, "Too many requests, slow down", http.StatusTooManyRequests)
			return
		}
		logger.Error.Printf("Rate limit check failed: %v", err)
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}

	reg, err := h.service.AuthenticateParticipant(r.Context(), creds.Email, creds.AccessCode)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			metrics.PortalLoginsTotal.WithLabelValues("denied").Inc()
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error.Printf("Portal login failed: %v", err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	info, err := h.service.Logins.RecordLogin(r.Context(), reg.Email)
	if err != nil {
		// Bookkeeping only, the login itself already succeeded.
		logger.Debug.Printf("Failed to record login for %s: %v", reg.Email, err)
	}

	metrics.PortalLoginsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"registration": toRow(*reg),
		"login":        info,
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

func (h *PortalHandler) HandlePhase(w http.ResponseWriter, r *http.Request) {
	var body struct {
		credentials
		Phase           string         `json:"phase"`
		GithubRepo      string         `json:"github_repo"`
		FinalSubmission map[string]any `json:"final_submission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reg, err := h.service.AuthenticateParticipant(r.Context(), body.Email, body.AccessCode)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error.Printf("Portal auth failed: %v", err)
		http.Error(w, "Failed to authenticate", http.StatusInternalServerError)
		return
	}

	outcome, err := h.service.AdvancePhase(reg, phases.Phase(body.Phase), body.GithubRepo, body.FinalSubmission)
	if err != nil {
		switch {
		case errors.Is(err, phases.ErrUnknownPhase):
			http.Error(w, "Unknown phase", http.StatusBadRequest)
		case errors.Is(err, phases.ErrBackwardTransition):
			http.Error(w, "Cannot move back to an earlier phase", http.StatusBadRequest)
		case errors.Is(err, phases.ErrMissingRepository):
			http.Error(w, "A repository link is required to submit", http.StatusBadRequest)
		case errors.Is(err, store.ErrPhaseConflict):
			http.Error(w, "Phase changed concurrently, reload and retry", http.StatusConflict)
		default:
			logger.Error.Printf("Phase transition failed for %d: %v", reg.ID, err)
			http.Error(w, "Failed to update phase", http.StatusInternalServerError)
		}
		return
	}

	metrics.PhaseTransitionsTotal.WithLabelValues(string(outcome.Phase)).Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"current_phase":     reg.CurrentPhase,
		"submission_status": reg.SubmissionStatus,
		"github_repo":       reg.GithubRepo,
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

func (h *PortalHandler) HandleEvaluation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EvaluatorEmail      string `json:"evaluator_email"`
		EvaluatorAccessCode string `json:"evaluator_access_code"`
		models.Evaluation
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ev, err := h.service.AuthenticateEvaluator(r.Context(), body.EvaluatorEmail, body.EvaluatorAccessCode)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error.Printf("Evaluator auth failed: %v", err)
		http.Error(w, "Failed to authenticate", http.StatusInternalServerError)
		return
	}

	eval := body.Evaluation
	eval.Evaluator = ev.Email

	if err := h.service.SubmitEvaluation(&eval); err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, phases.ErrUnknownPhase):
			http.Error(w, "Unknown phase", http.StatusBadRequest)
		case errors.Is(err, store.ErrNotFound):
			http.Error(w, "Registration not found", http.StatusNotFound)
		case errors.As(err, &validationErrs):
			http.Error(w, "Scores must be integers between 0 and 10", http.StatusBadRequest)
		default:
			logger.Error.Printf("Failed to save evaluation: %v", err)
			http.Error(w, "Failed to save evaluation", http.StatusInternalServerError)
		}
		return
	}

	metrics.EvaluationsTotal.WithLabelValues(eval.Phase).Inc()
	metrics.EvaluationScoreHistogram.WithLabelValues(eval.Phase).Observe(float64(eval.TotalScore))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"id":          eval.ID,
		"total_score": eval.TotalScore,
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

// HandleMyTeam returns the canonical team view for a logged-in participant,
// the same flattening the admin list and CSV export use.
func (h *PortalHandler) HandleMyTeam(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reg, err := h.service.AuthenticateParticipant(r.Context(), creds.Email, creds.AccessCode)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error.Printf("Portal auth failed: %v", err)
		http.Error(w, "Failed to authenticate", http.StatusInternalServerError)
		return
	}

	members := team.Members(reg.TeamMembers)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"team_name": reg.TeamName,
		"team_size": len(members),
		"members":   members,
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}
