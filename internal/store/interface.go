package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/memalihaider/techverse-portal/internal/models"
)

var (
	// ErrDuplicate surfaces the unique email/cnic constraint to callers
	// without leaking driver-specific error text.
	ErrDuplicate = errors.New("registration already exists")

	ErrNotFound = errors.New("not found")

	// ErrPhaseConflict means the stored current_phase no longer matches what
	// the transition was validated against; the caller should re-read and
	// retry against fresh state.
	ErrPhaseConflict = errors.New("phase changed concurrently")
)

type RegistrationStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateRegistration(reg *models.Registration) error
	GetRegistration(id int64) (*models.Registration, error)
	GetRegistrationByEmail(email string) (*models.Registration, error)
	GetRegistrationByCredentials(email, accessCode string) (*models.Registration, error)
	ListRegistrations(module, status string) ([]models.Registration, error)
	UpdateRegistrationStatus(id int64, status string) error
	DeleteRegistration(id int64) error
	StatusCounts(module string) (map[string]int64, error)

	ApplyPhaseOutcome(id int64, expectedPhase string, update PhaseUpdate) error

	CreateEvaluation(eval *models.Evaluation) error
	ListEvaluations(registrationID int64) ([]models.Evaluation, error)
	ListModuleEvaluations(module string) ([]models.Evaluation, error)

	GetEvaluator(email string) (*models.Evaluator, error)
}

const registrationColumns = `id, created_at, name, email, cnic, phone, university,
		roll_no, module, team_name, team_members, status, access_code,
		certificate_id, current_phase, submission_status, github_repo, business_idea`

const evaluationColumns = `id, registration_id, phase, evaluator, innovation,
		feasibility, market_potential, presentation, technical, business_model,
		total_score, comments, timestamp`

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

// IsDuplicate matches the unique-violation text of both supported drivers.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (s *BaseStore) GetRegistration(id int64) (*models.Registration, error) {
	var reg models.Registration
	query := s.Converter(`
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = ?
	`)

	err := s.DB.Get(&reg, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &reg, nil
}

func (s *BaseStore) GetRegistrationByEmail(email string) (*models.Registration, error) {
	var reg models.Registration
	query := s.Converter(`
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE email = ?
	`)

	err := s.DB.Get(&reg, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration by email: %w", err)
	}
	return &reg, nil
}

// GetRegistrationByCredentials matches both halves of the capability pair in
// one query so a miss never says which half was wrong.
func (s *BaseStore) GetRegistrationByCredentials(email, accessCode string) (*models.Registration, error) {
	var reg models.Registration
	query := s.Converter(`
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE email = ?
		AND access_code = ?
	`)

	err := s.DB.Get(&reg, query, email, accessCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration by credentials: %w", err)
	}
	return &reg, nil
}

func (s *BaseStore) ListRegistrations(module, status string) ([]models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE 1=1
	`
	args := []interface{}{}
	if module != "" {
		query += " AND module = ?"
		args = append(args, module)
	}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at ASC, id ASC"

	var regs []models.Registration
	if err := s.DB.Select(&regs, s.Converter(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

func (s *BaseStore) UpdateRegistrationStatus(id int64, status string) error {
	res, err := s.DB.Exec(s.Converter(`
		UPDATE registrations SET status = ? WHERE id = ?
	`), status, id)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BaseStore) DeleteRegistration(id int64) error {
	res, err := s.DB.Exec(s.Converter(`
		DELETE FROM registrations WHERE id = ?
	`), id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyPhaseOutcome persists a validated phase transition with an optimistic
// check: the write only lands if current_phase is still the phase the
// transition was validated against.
func (s *BaseStore) ApplyPhaseOutcome(id int64, expectedPhase string, update PhaseUpdate) error {
	res, err := s.DB.Exec(s.Converter(`
		UPDATE registrations
		SET current_phase = ?,
			submission_status = ?,
			github_repo = ?,
			business_idea = ?
		WHERE id = ?
		AND current_phase = ?
	`),
		update.Phase,
		update.SubmissionStatus,
		update.GithubRepo,
		string(update.BusinessIdea),
		id,
		expectedPhase,
	)
	if err != nil {
		return fmt.Errorf("failed to apply phase update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check phase update: %w", err)
	}
	if n == 0 {
		reg, err := s.GetRegistration(id)
		if err != nil {
			return err
		}
		if reg == nil {
			return ErrNotFound
		}
		return ErrPhaseConflict
	}
	return nil
}

func (s *BaseStore) ListEvaluations(registrationID int64) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	query := s.Converter(`
		SELECT ` + evaluationColumns + `
		FROM evaluations
		WHERE registration_id = ?
		ORDER BY timestamp ASC, id ASC
	`)

	if err := s.DB.Select(&evals, query, registrationID); err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evals, nil
}

func (s *BaseStore) GetEvaluator(email string) (*models.Evaluator, error) {
	var ev models.Evaluator
	query := s.Converter(`
		SELECT email, name, access_code, active
		FROM evaluators
		WHERE email = ?
	`)

	err := s.DB.Get(&ev, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluator: %w", err)
	}
	return &ev, nil
}
