package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.TxManager
	repository.ApplicationRepository
	repository.OpportunityRepository
	repository.TeamRepository
	repository.CompanyRepository
	repository.EOIRepository
	repository.NotificationRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		TxManager:              NewTxManager(db),
		ApplicationRepository:  NewApplicationRepository(db),
		OpportunityRepository:  NewOpportunityRepository(db),
		TeamRepository:         NewTeamRepository(db),
		CompanyRepository:      NewCompanyRepository(db),
		EOIRepository:          NewEOIRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
// The database carries unique indexes backing the one-application-per-pair
// and one-pending-EOI-per-pair rules, so an insert losing a race surfaces
// here rather than as a missed pre-check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
