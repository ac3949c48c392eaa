package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/phases"
	"github.com/memalihaider/techverse-portal/internal/scoring"
	"github.com/memalihaider/techverse-portal/internal/store"
	"github.com/memalihaider/techverse-portal/internal/team"
)

type Service struct {
	Config *Config
	Store  store.RegistrationStore
	Auth   *Auth
	Logins *LoginTracker
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	return &Service{
		Config: config,
		Store:  store,
		Auth:   auth,
		Logins: NewLoginTracker(auth.Redis()),
	}, nil
}

// ValidateAdminHeaders gates the admin dashboard endpoints the same way for
// every handler: all configured headers must match.
func (s *Service) ValidateAdminHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.AdminHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

// RegisterParticipant fills the server-owned fields of a new registration and
// persists it. Duplicate email or CNIC surfaces as store.ErrDuplicate.
func (s *Service) RegisterParticipant(reg *models.Registration) error {
	code, err := NewAccessCode()
	if err != nil {
		return fmt.Errorf("failed to issue access code: %w", err)
	}

	reg.ID = 0
	reg.CreatedAt = time.Now().Unix()
	reg.Status = models.StatusPending
	reg.AccessCode = code
	reg.CertificateID = uuid.NewString()
	// Digits-only is the canonical stored form, so "35201-1234567-1" and
	// "3520112345671" hit the same unique index entry.
	reg.CNIC = team.Digits(reg.CNIC)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))

	if len(reg.TeamMembers) == 0 {
		reg.TeamMembers = json.RawMessage(`[]`)
	}

	reg.CurrentPhase = ""
	reg.SubmissionStatus = ""
	reg.GithubRepo = ""
	reg.BusinessIdea = json.RawMessage(`{}`)
	if reg.Module == models.ModuleBusinessInnovation {
		reg.CurrentPhase = string(phases.IdeaSelection)
		reg.SubmissionStatus = phases.SubmissionStatusPending
	}

	if err := reg.Validate(); err != nil {
		return err
	}

	return s.Store.CreateRegistration(reg)
}

// AuthenticateParticipant resolves an (email, access code) pair to an
// approved portal registration. Every failure mode collapses into
// ErrInvalidCredentials so the response never hints which check failed.
func (s *Service) AuthenticateParticipant(ctx context.Context, email, accessCode string) (*models.Registration, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	accessCode = strings.ToUpper(strings.TrimSpace(accessCode))
	if email == "" || accessCode == "" {
		return nil, ErrInvalidCredentials
	}

	reg, err := s.Store.GetRegistrationByCredentials(email, accessCode)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		logger.Debug.Printf("Portal login miss for %s", email)
		return nil, ErrInvalidCredentials
	}
	if reg.Status != models.StatusApproved || reg.Module != s.Config.Portal.Module {
		logger.Debug.Printf(
			"Portal login rejected for %s: status=%s module=%s",
			email, reg.Status, reg.Module,
		)
		return nil, ErrInvalidCredentials
	}

	return reg, nil
}

// AuthenticateEvaluator resolves an evaluator by email and access code, with
// the same uniform failure signal as participant auth.
func (s *Service) AuthenticateEvaluator(ctx context.Context, email, accessCode string) (*models.Evaluator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || accessCode == "" {
		return nil, ErrInvalidCredentials
	}

	ev, err := s.Store.GetEvaluator(email)
	if err != nil {
		return nil, err
	}
	if ev == nil || !ev.Active || ev.AccessCode != strings.ToUpper(strings.TrimSpace(accessCode)) {
		return nil, ErrInvalidCredentials
	}
	return ev, nil
}

// AdvancePhase validates the requested transition against the registration's
// stored phase and persists the outcome with an optimistic phase check.
// Returns the transition errors from the phases package unchanged, or
// store.ErrPhaseConflict when a concurrent request won the race.
func (s *Service) AdvancePhase(reg *models.Registration, requested phases.Phase, repoLink string, finalSubmission map[string]any) (*phases.Outcome, error) {
	current := phases.Phase(reg.CurrentPhase)

	outcome, err := phases.Transition(current, requested, phases.Context{
		RepoLink:        repoLink,
		FinalSubmission: finalSubmission,
		BusinessIdea:    reg.IdeaMap(),
	})
	if err != nil {
		return nil, err
	}

	update := store.PhaseUpdate{
		Phase:            string(outcome.Phase),
		SubmissionStatus: reg.SubmissionStatus,
		GithubRepo:       reg.GithubRepo,
		BusinessIdea:     reg.BusinessIdea,
	}
	if update.BusinessIdea == nil {
		update.BusinessIdea = []byte(`{}`)
	}
	if outcome.SubmissionStatus != "" {
		update.SubmissionStatus = outcome.SubmissionStatus
	}
	if outcome.RepoLink != "" {
		update.GithubRepo = outcome.RepoLink
	}
	if outcome.BusinessIdea != nil {
		encoded, err := json.Marshal(outcome.BusinessIdea)
		if err != nil {
			return nil, fmt.Errorf("failed to encode business idea: %w", err)
		}
		update.BusinessIdea = encoded
	}

	if err := s.Store.ApplyPhaseOutcome(reg.ID, reg.CurrentPhase, update); err != nil {
		return nil, err
	}

	reg.CurrentPhase = update.Phase
	reg.SubmissionStatus = update.SubmissionStatus
	reg.GithubRepo = update.GithubRepo
	reg.BusinessIdea = update.BusinessIdea

	return outcome, nil
}

// SubmitEvaluation stamps, totals, validates and stores one judge's scoring.
func (s *Service) SubmitEvaluation(eval *models.Evaluation) error {
	if !phases.Valid(phases.Phase(eval.Phase)) {
		return phases.ErrUnknownPhase
	}

	eval.ComputeTotal()
	if eval.Timestamp == 0 {
		eval.Timestamp = time.Now().Unix()
	}
	if err := eval.Validate(); err != nil {
		return err
	}

	reg, err := s.Store.GetRegistration(eval.RegistrationID)
	if err != nil {
		return err
	}
	if reg == nil {
		return store.ErrNotFound
	}

	return s.Store.CreateEvaluation(eval)
}

// Leaderboard builds ranked rows for the portal module's approved
// participants. One registration query plus one batch evaluation query,
// aggregation and ranking happen in memory.
func (s *Service) Leaderboard() ([]scoring.Row, error) {
	regs, err := s.Store.ListRegistrations(s.Config.Portal.Module, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	evals, err := s.Store.ListModuleEvaluations(s.Config.Portal.Module)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch evaluations: %w", err)
	}

	byRegistration := make(map[int64][]models.Evaluation, len(regs))
	for _, e := range evals {
		byRegistration[e.RegistrationID] = append(byRegistration[e.RegistrationID], e)
	}

	rows := make([]scoring.Row, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, scoring.Row{
			RegistrationID: reg.ID,
			Team:           reg.TeamName,
			Name:           reg.Name,
			Phase:          reg.CurrentPhase,
			Scores:         scoring.Aggregate(byRegistration[reg.ID]),
			RegisteredAt:   reg.CreatedAt,
		})
	}

	return scoring.Rank(rows), nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
