package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/app"
	"github.com/memalihaider/techverse-portal/internal/export"
	"github.com/memalihaider/techverse-portal/internal/metrics"
	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/scoring"
	"github.com/memalihaider/techverse-portal/internal/store"
	"github.com/memalihaider/techverse-portal/internal/team"
)

type RegistrationHandler struct {
	service *app.Service
}

func NewRegistrationHandler(service *app.Service) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
	}
}

// registrationRow is a registration plus its canonical team view, the shape
// the admin dashboard renders.
type registrationRow struct {
	models.Registration
	Team     []models.TeamMember `json:"team"`
	TeamSize int                 `json:"team_size"`
}

func toRow(reg models.Registration) registrationRow {
	members := team.Members(reg.TeamMembers)
	return registrationRow{
		Registration: reg,
		Team:         members,
		TeamSize:     len(members),
	}
}

func (h *RegistrationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(duration)
	}()

	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RegisterParticipant(&reg); err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, store.ErrDuplicate):
			http.Error(w, "A registration with this email or CNIC already exists", http.StatusConflict)
		case errors.As(err, &validationErrs):
			http.Error(w, "Invalid registration data: "+validationErrs.Error(), http.StatusBadRequest)
		default:
			logger.Error.Printf("Failed to create registration: %v", err)
			http.Error(w, "Failed to save registration", http.StatusInternalServerError)
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues(reg.Module).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"id":             reg.ID,
		"status":         reg.Status,
		"access_code":    reg.AccessCode,
		"certificate_id": reg.CertificateID,
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

func (h *RegistrationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateAdminHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	regs, err := h.service.Store.ListRegistrations(
		r.URL.Query().Get("module"),
		r.URL.Query().Get("status"),
	)
	if err != nil {
		logger.Error.Printf("Failed to list registrations: %v", err)
		http.Error(w, "Failed to fetch registrations", http.StatusInternalServerError)
		return
	}

	rows := make([]registrationRow, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, toRow(reg))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"rows": rows,
	}); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *RegistrationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateAdminHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid registration id", http.StatusBadRequest)
		return
	}

	reg, err := h.service.Store.GetRegistration(id)
	if err != nil {
		logger.Error.Printf("Failed to get registration %d: %v", id, err)
		http.Error(w, "Failed to fetch registration", http.StatusInternalServerError)
		return
	}
	if reg == nil {
		http.Error(w, "Registration not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toRow(*reg)); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

func (h *RegistrationHandler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateAdminHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid registration id", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Status != models.StatusApproved && body.Status != models.StatusRejected {
		http.Error(w, "Status must be approved or rejected", http.StatusBadRequest)
		return
	}

	reg, err := h.service.Store.GetRegistration(id)
	if err != nil {
		logger.Error.Printf("Failed to get registration %d: %v", id, err)
		http.Error(w, "Failed to fetch registration", http.StatusInternalServerError)
		return
	}
	if reg == nil {
		http.Error(w, "Registration not found", http.StatusNotFound)
		return
	}

	if err := h.service.Store.UpdateRegistrationStatus(id, body.Status); err != nil {
		logger.Error.Printf("Failed to update registration %d: %v", id, err)
		http.Error(w, "Failed to update registration", http.StatusInternalServerError)
		return
	}

	metrics.DecisionsTotal.WithLabelValues(reg.Module, body.Status).Inc()

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *RegistrationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateAdminHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid registration id", http.StatusBadRequest)
		return
	}

	if err := h.service.Store.DeleteRegistration(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Registration not found", http.StatusNotFound)
			return
		}
		logger.Error.Printf("Failed to delete registration %d: %v", id, err)
		http.Error(w, "Failed to delete registration", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleEvaluations lists one registration's evaluations with their
// aggregate, the drill-down behind a leaderboard row.
func (h *RegistrationHandler) HandleEvaluations(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateAdminHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid registration id", http.StatusBadRequest)
		return
	}

	reg, err := h.service.Store.GetRegistration(id)
	if err != nil {
		logger.Error.Printf("Failed to get registration %d: %v", id, err)
		http.Error(w, "Failed to fetch registration", http.StatusInternalServerError)
		return
	}
	if reg == nil {
		http.Error(w, "Registration not found", http.StatusNotFound)
		return
	}

	evals, err := h.service.Store.ListEvaluations(id)
	if err != nil {
		logger.Error.Printf("Failed to list evaluations for %d: %v", id, err)
		http.Error(w, "Failed to fetch evaluations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"rows":    evals,
		"summary": scoring.Aggregate(evals),
	}); err != nil {
		logger.Debug.Printf("Error encoding response: %v", err)
	}
}

func (h *RegistrationHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateAdminHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	regs, err := h.service.Store.ListRegistrations(
		r.URL.Query().Get("module"),
		r.URL.Query().Get("status"),
	)
	if err != nil {
		logger.Error.Printf("Failed to list registrations for export: %v", err)
		http.Error(w, "Failed to fetch registrations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)
	if err := export.WriteRegistrations(w, regs); err != nil {
		logger.Error.Printf("Failed to write CSV export: %v", err)
	}
}
