package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
)

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	txm := postgres.NewTxManager(db)
	oppRepo := postgres.NewOpportunityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE opportunities SET applications_count = GREATEST").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = txm.WithTx(context.Background(), func(ctx context.Context) error {
		return oppRepo.IncrementApplications(ctx, 20, 1)
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	txm := postgres.NewTxManager(db)
	oppRepo := postgres.NewOpportunityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE opportunities SET applications_count = GREATEST").
		WillReturnResult(sqlmock.NewResult(0, 0)) // not found inside the tx
	mock.ExpectRollback()

	err = txm.WithTx(context.Background(), func(ctx context.Context) error {
		return oppRepo.IncrementApplications(ctx, 404, 1)
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_JoinsAmbientTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	txm := postgres.NewTxManager(db)

	// Only one Begin/Commit pair for the nested calls.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err = txm.WithTx(context.Background(), func(ctx context.Context) error {
		return txm.WithTx(ctx, func(ctx context.Context) error {
			return nil
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_PropagatesCallbackError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	txm := postgres.NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = txm.WithTx(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
