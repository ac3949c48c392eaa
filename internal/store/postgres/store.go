package postgres

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/store"
)

type PostgresStore struct {
	store.BaseStore
}

func NewPostgresStore(dsn, migrationsDir string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &PostgresStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			out := query
			for i := 1; strings.Contains(out, "?"); i++ {
				out = strings.Replace(out, "?", fmt.Sprintf("$%d", i), 1)
			}
			return out
		},
	}}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, nil)
}

func (s *PostgresStore) CreateRegistration(reg *models.Registration) error {
	rows, err := s.DB.NamedQuery(`
		INSERT INTO registrations (
			created_at, name, email, cnic, phone, university, roll_no,
			module, team_name, team_members, status, access_code,
			certificate_id, current_phase, submission_status, github_repo,
			business_idea
		) VALUES (
			:created_at, :name, :email, :cnic, :phone, :university, :roll_no,
			:module, :team_name, :team_members, :status, :access_code,
			:certificate_id, :current_phase, :submission_status, :github_repo,
			:business_idea
		)
		RETURNING id
	`, reg)
	if err != nil {
		if store.IsDuplicate(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&reg.ID); err != nil {
			return fmt.Errorf("failed to read registration id: %w", err)
		}
	}
	return rows.Err()
}

func (s *PostgresStore) CreateEvaluation(eval *models.Evaluation) error {
	rows, err := s.DB.NamedQuery(`
		INSERT INTO evaluations (
			registration_id, phase, evaluator, innovation, feasibility,
			market_potential, presentation, technical, business_model,
			total_score, comments, timestamp
		) VALUES (
			:registration_id, :phase, :evaluator, :innovation, :feasibility,
			:market_potential, :presentation, :technical, :business_model,
			:total_score, :comments, :timestamp
		)
		RETURNING id
	`, eval)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&eval.ID); err != nil {
			return fmt.Errorf("failed to read evaluation id: %w", err)
		}
	}
	return rows.Err()
}

// ListModuleEvaluations batch-fetches every evaluation of a module's approved
// participants in one query; the leaderboard groups them in memory.
func (s *PostgresStore) ListModuleEvaluations(module string) ([]models.Evaluation, error) {
	query := `
		SELECT
			e.id,
			e.registration_id,
			e.phase,
			e.evaluator,
			e.innovation,
			e.feasibility,
			e.market_potential,
			e.presentation,
			e.technical,
			e.business_model,
			e.total_score,
			e.comments,
			e.timestamp
		FROM evaluations e
		JOIN registrations r ON r.id = e.registration_id
		WHERE r.module = $1
		AND r.status = 'approved'
		ORDER BY e.registration_id, e.timestamp ASC
	`

	var evals []models.Evaluation
	if err := s.DB.Select(&evals, query, module); err != nil {
		return nil, fmt.Errorf("failed to list module evaluations: %w", err)
	}
	return evals, nil
}

func (s *PostgresStore) StatusCounts(module string) (map[string]int64, error) {
	query := `
		SELECT status, COUNT(*) as count
		FROM registrations
		WHERE (module = $1 OR $1 = '')
		GROUP BY status
	`

	var rows []store.StatusCount
	if err := s.DB.Select(&rows, query, module); err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
