package app

import (
	"strings"

	"github.com/memalihaider/techverse-portal/internal/store"
	"github.com/memalihaider/techverse-portal/internal/store/postgres"
	"github.com/memalihaider/techverse-portal/internal/store/sqlite"
)

func NewStore(dsn, migrationsDir string) (store.RegistrationStore, error) {
	if strings.HasPrefix(dsn, "postgres") {
		return postgres.NewPostgresStore(dsn, migrationsDir)
	}
	return sqlite.NewSQLiteStore(dsn, migrationsDir)
}
