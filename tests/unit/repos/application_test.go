package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
)

var applicationColumns = []string{
	"id", "team_id", "opportunity_id", "status", "version", "cover_letter", "proposed_comp_cents", "proposed_equity_bps",
	"availability_date", "proposal", "attachment_refs", "rejection_reason", "response_message", "recruiter_notes",
	"response_deadline", "interview", "offer", "applied_at", "reviewed_at", "offer_made_at", "final_decision_at", "updated_on",
}

func submittedRow() *sqlmock.Rows {
	return sqlmock.NewRows(applicationColumns).
		AddRow(100, 10, 20, "SUBMITTED", 1, "Cover letter", 25000000, 0,
			"2026-10-01", "Proposal", "{}", "", "", "",
			nil, nil, nil, "2026-08-01T09:00:00Z", nil, nil, nil, "2026-08-01T09:00:00Z")
}

func TestApplicationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		app := &domain.Application{
			TeamID:            10,
			OpportunityID:     20,
			Status:            domain.ApplicationStatusSubmitted,
			CoverLetter:       "Cover letter",
			ProposedCompCents: 25000000,
			AvailabilityDate:  "2026-10-01",
			AppliedAt:         "2026-08-01T09:00:00Z",
		}

		mock.ExpectQuery("INSERT INTO applications").
			WithArgs(app.TeamID, app.OpportunityID, app.Status, 1, app.CoverLetter, app.ProposedCompCents, app.ProposedEquityBps,
				app.AvailabilityDate, app.Proposal, sqlmock.AnyArg(), app.AppliedAt, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))

		err := repo.Create(ctx, app)
		assert.NoError(t, err)
		assert.Equal(t, int32(100), app.ID)
		assert.Equal(t, int32(1), app.Version)
		assert.NotEmpty(t, app.UpdatedOn)
	})

	t.Run("DuplicatePairConflicts", func(t *testing.T) {
		app := &domain.Application{TeamID: 10, OpportunityID: 20, Status: domain.ApplicationStatusSubmitted}

		mock.ExpectQuery("INSERT INTO applications").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "applications_team_id_opportunity_id_key"})

		err := repo.Create(ctx, app)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Contains(t, err.Error(), "already applied")
	})
}

func TestApplicationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1").
			WithArgs(int32(100)).
			WillReturnRows(submittedRow())

		app, err := repo.GetByID(ctx, 100)
		assert.NoError(t, err)
		assert.NotNil(t, app)
		assert.Equal(t, int32(100), app.ID)
		assert.Equal(t, domain.ApplicationStatusSubmitted, app.Status)
		assert.Nil(t, app.Interview)
		assert.Nil(t, app.Offer)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows(applicationColumns))

		app, err := repo.GetByID(ctx, 404)
		assert.NoError(t, err)
		assert.Nil(t, app)
	})

	t.Run("EmbeddedInterview", func(t *testing.T) {
		rows := sqlmock.NewRows(applicationColumns).
			AddRow(100, 10, 20, "INTERVIEWING", 3, "Cover letter", 25000000, 0,
				"2026-10-01", "Proposal", "{}", "", "", "",
				nil, []byte(`{"scheduled_at":"2026-09-10T15:00:00Z","format":"VIDEO","duration_minutes":60,"participants":[],"feedback":[]}`),
				nil, "2026-08-01T09:00:00Z", nil, nil, nil, "2026-08-01T09:00:00Z")

		mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1").
			WithArgs(int32(100)).
			WillReturnRows(rows)

		app, err := repo.GetByID(ctx, 100)
		assert.NoError(t, err)
		assert.NotNil(t, app.Interview)
		assert.Equal(t, "VIDEO", app.Interview.Format)
		assert.Equal(t, int32(60), app.Interview.DurationMinutes)
	})
}

func TestApplicationRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		app := &domain.Application{ID: 100, Status: domain.ApplicationStatusReviewing, Version: 1}

		mock.ExpectExec("UPDATE applications SET").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				app.ID, domain.ApplicationStatusSubmitted, app.Version).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, app, domain.ApplicationStatusSubmitted)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), app.Version)
	})

	t.Run("StaleStatusConflicts", func(t *testing.T) {
		app := &domain.Application{ID: 100, Status: domain.ApplicationStatusReviewing, Version: 2}

		mock.ExpectExec("UPDATE applications SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, app, domain.ApplicationStatusSubmitted)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Contains(t, err.Error(), "changed concurrently")
		assert.Equal(t, int32(2), app.Version)
	})

	// A write that leaves the status unchanged, such as a feedback append,
	// must still lose when another writer bumped the version first.
	t.Run("SameStatusStaleVersionConflicts", func(t *testing.T) {
		app := &domain.Application{ID: 100, Status: domain.ApplicationStatusInterviewing, Version: 3}

		mock.ExpectExec("UPDATE applications SET").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				app.ID, domain.ApplicationStatusInterviewing, app.Version).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, app, domain.ApplicationStatusInterviewing)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})
}

func TestApplicationRepository_UpdateContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		app := &domain.Application{ID: 100, CoverLetter: "Revised", Version: 1}

		mock.ExpectExec("UPDATE applications SET cover_letter").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), app.ID, domain.ApplicationStatusSubmitted, app.Version).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateContent(ctx, app)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), app.Version)
	})

	t.Run("LockedAfterSubmission", func(t *testing.T) {
		app := &domain.Application{ID: 100, CoverLetter: "Revised", Version: 1}

		mock.ExpectExec("UPDATE applications SET cover_letter").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateContent(ctx, app)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Contains(t, err.Error(), "no longer editable")
	})
}

func TestApplicationRepository_ListByTeam(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE team_id = \\$1 ORDER BY applied_at DESC").
			WithArgs(int32(10), int32(20), int32(0)).
			WillReturnRows(submittedRow())

		apps, total, err := repo.ListByTeam(ctx, 10, "", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, apps, 1)
	})

	t.Run("StatusFilter", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(int32(10), domain.ApplicationStatusReviewing).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE team_id = \\$1 AND status = \\$2").
			WithArgs(int32(10), domain.ApplicationStatusReviewing, int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(applicationColumns))

		apps, total, err := repo.ListByTeam(ctx, 10, domain.ApplicationStatusReviewing, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), total)
		assert.Empty(t, apps)
	})
}
