package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewStampRepositoryForTest creates a stamp repository with test database and logger
func NewStampRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StampRepository {
	return postgres.NewStampRepository(NewDBForTest(db, logger))
}
