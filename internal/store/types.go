package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

type DBConfig struct {
	DSN  string
	Type DatabaseType
}

// PhaseUpdate is the write-payload computed by phases.Transition, flattened
// for persistence. BusinessIdea is the full JSON document to store.
type PhaseUpdate struct {
	Phase            string
	SubmissionStatus string
	GithubRepo       string
	BusinessIdea     []byte
}

// StatusCount is one row of the per-status registration breakdown.
type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}
