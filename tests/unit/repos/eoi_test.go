package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
)

var eoiColumns = []string{"id", "from_type", "from_id", "to_type", "to_id", "status", "message", "interest_level",
	"specific_role", "timeline", "budget_range", "created_by", "responded_by", "responded_at", "created_on"}

func TestEOIRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEOIRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		eoi := &domain.ExpressionOfInterest{
			FromType:  domain.PartyTypeTeam,
			FromID:    10,
			ToType:    domain.PartyTypeOpportunity,
			ToID:      20,
			Status:    domain.EOIStatusPending,
			Message:   "We would fit this desk.",
			CreatedBy: 1,
		}

		mock.ExpectQuery("INSERT INTO expressions_of_interest").
			WithArgs(eoi.FromType, eoi.FromID, eoi.ToType, eoi.ToID, eoi.Status, eoi.Message, eoi.InterestLevel,
				eoi.SpecificRole, eoi.Timeline, eoi.BudgetRange, eoi.CreatedBy, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(55))

		err = repo.Create(ctx, eoi)
		assert.NoError(t, err)
		assert.Equal(t, int32(55), eoi.ID)
		assert.NotEmpty(t, eoi.CreatedOn)
	})

	t.Run("DuplicatePendingPairConflicts", func(t *testing.T) {
		eoi := &domain.ExpressionOfInterest{
			FromType: domain.PartyTypeTeam,
			FromID:   10,
			ToType:   domain.PartyTypeOpportunity,
			ToID:     20,
			Status:   domain.EOIStatusPending,
		}

		mock.ExpectQuery("INSERT INTO expressions_of_interest").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "eoi_pending_pair_key"})

		err := repo.Create(ctx, eoi)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestEOIRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEOIRepository(db)
	ctx := context.Background()

	responder := int32(9)
	ts := "2026-08-30T12:00:00Z"
	eoi := &domain.ExpressionOfInterest{ID: 55, Status: domain.EOIStatusAccepted, RespondedBy: &responder, RespondedAt: &ts}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE expressions_of_interest SET").
			WithArgs(eoi.Status, eoi.RespondedBy, eoi.RespondedAt, eoi.ID, domain.EOIStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, eoi, domain.EOIStatusPending)
		assert.NoError(t, err)
	})

	t.Run("SecondResponderLoses", func(t *testing.T) {
		mock.ExpectExec("UPDATE expressions_of_interest SET").
			WithArgs(eoi.Status, eoi.RespondedBy, eoi.RespondedAt, eoi.ID, domain.EOIStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, eoi, domain.EOIStatusPending)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Contains(t, err.Error(), "already resolved")
	})
}

func TestEOIRepository_HasPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEOIRepository(db)
	ctx := context.Background()

	from := repository.PartyRef{Type: domain.PartyTypeTeam, ID: 10}
	to := repository.PartyRef{Type: domain.PartyTypeOpportunity, ID: 20}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(from.Type, from.ID, to.Type, to.ID, domain.EOIStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	pending, err := repo.HasPending(ctx, from, to)
	assert.NoError(t, err)
	assert.True(t, pending)
}

func TestEOIRepository_ListSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEOIRepository(db)
	ctx := context.Background()

	t.Run("EmptyPartyListShortCircuits", func(t *testing.T) {
		eois, total, err := repo.ListSent(ctx, nil, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), total)
		assert.Empty(t, eois)
	})

	t.Run("Success", func(t *testing.T) {
		from := []repository.PartyRef{{Type: domain.PartyTypeTeam, ID: 10}}

		mock.ExpectQuery("SELECT count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		rows := sqlmock.NewRows(eoiColumns).
			AddRow(55, "TEAM", 10, "OPPORTUNITY", 20, "PENDING", "msg", "", "", "", "", 1, nil, nil, "2026-08-01T00:00:00Z")
		mock.ExpectQuery("SELECT (.+) FROM expressions_of_interest WHERE").
			WillReturnRows(rows)

		eois, total, err := repo.ListSent(ctx, from, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, eois, 1)
		assert.Equal(t, domain.EOIStatusPending, eois[0].Status)
	})
}

func TestEOIRepository_ListPendingOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEOIRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(eoiColumns).
		AddRow(55, "TEAM", 10, "OPPORTUNITY", 20, "PENDING", "", "", "", "", "", 1, nil, nil, "2026-06-01T00:00:00Z")
	mock.ExpectQuery("SELECT (.+) FROM expressions_of_interest WHERE status = \\$1 AND created_on < \\$2").
		WithArgs(domain.EOIStatusPending, "2026-07-31T00:00:00Z").
		WillReturnRows(rows)

	stale, err := repo.ListPendingOlderThan(ctx, "2026-07-31T00:00:00Z")
	assert.NoError(t, err)
	assert.Len(t, stale, 1)
}
