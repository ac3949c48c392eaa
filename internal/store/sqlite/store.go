// internal/store/sqlite/store.go
package sqlite

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/memalihaider/techverse-portal/internal/models"
	"github.com/memalihaider/techverse-portal/internal/store"
)

type SQLiteStore struct {
	store.BaseStore
}

func NewSQLiteStore(dsn, migrationsDir string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			return query
		},
	}}

	if err := s.ApplyMigrations(migrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, translateToSQLite)
}

// translateToSQLite converts Postgres SQL to SQLite dialect
func translateToSQLite(sql string) string {
	replacements := map[string]string{
		"BIGSERIAL PRIMARY KEY": "INTEGER PRIMARY KEY AUTOINCREMENT",
		"BIGINT":                "INTEGER",
		"BOOLEAN":               "INTEGER",
		"UUID":                  "TEXT",
		"TRUE":                  "1",
		"FALSE":                 "0",
		"now()":                 "CURRENT_TIMESTAMP",
		"VARCHAR(8)":            "TEXT",
		"VARCHAR(16)":           "TEXT",
		"VARCHAR(32)":           "TEXT",
		"::text":                "",
	}
	result := sql
	for from, to := range replacements {
		result = strings.ReplaceAll(result, from, to)
	}
	return result
}

func (s *SQLiteStore) CreateRegistration(reg *models.Registration) error {
	res, err := s.DB.NamedExec(`
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
	`, reg)
	if err != nil {
		if store.IsDuplicate(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read registration id: %w", err)
	}
	reg.ID = id
	return nil
}

func (s *SQLiteStore) CreateEvaluation(eval *models.Evaluation) error {
	res, err := s.DB.NamedExec(`
		INSERT INTO evaluations (
			registration_id, phase, evaluator, innovation, feasibility,
			market_potential, presentation, technical, business_model,
			total_score, comments, timestamp
		) VALUES (
			:registration_id, :phase, :evaluator, :innovation, :feasibility,
			:market_potential, :presentation, :technical, :business_model,
			:total_score, :comments, :timestamp
		)
	`, eval)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read evaluation id: %w", err)
	}
	eval.ID = id
	return nil
}

// ListModuleEvaluations batch-fetches every evaluation of a module's approved
// participants in one query; the leaderboard groups them in memory.
func (s *SQLiteStore) ListModuleEvaluations(module string) ([]models.Evaluation, error) {
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
		WHERE r.module = ?
		AND r.status = 'approved'
		ORDER BY e.registration_id, e.timestamp ASC
	`

	var evals []models.Evaluation
	if err := s.DB.Select(&evals, query, module); err != nil {
		return nil, fmt.Errorf("failed to list module evaluations: %w", err)
	}
	return evals, nil
}

func (s *SQLiteStore) StatusCounts(module string) (map[string]int64, error) {
	query := `
		SELECT status, COUNT(*) as count
		FROM registrations
		WHERE (module = ? OR ? = '')
		GROUP BY status
	`

	var rows []store.StatusCount
	if err := s.DB.Select(&rows, query, module, module); err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
