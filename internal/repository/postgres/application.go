package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, team_id, opportunity_id, status, version, cover_letter, proposed_comp_cents, proposed_equity_bps,
	availability_date, proposal, attachment_refs, rejection_reason, response_message, recruiter_notes,
	response_deadline, interview, offer, applied_at, reviewed_at, offer_made_at, final_decision_at, updated_on`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	ts := time.Now().UTC()
	query := `INSERT INTO applications (team_id, opportunity_id, status, version, cover_letter, proposed_comp_cents, proposed_equity_bps,
	          availability_date, proposal, attachment_refs, applied_at, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		app.TeamID, app.OpportunityID, app.Status, 1, app.CoverLetter, app.ProposedCompCents, app.ProposedEquityBps,
		app.AvailabilityDate, app.Proposal, pq.Array(app.AttachmentRefs), app.AppliedAt, ts,
	).Scan(&app.ID)
	if isUniqueViolation(err) {
		return domain.Conflictf("team %d has already applied to opportunity %d", app.TeamID, app.OpportunityID)
	}
	if err != nil {
		return err
	}
	app.Version = 1
	app.UpdatedOn = ts.Format(time.RFC3339)
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *applicationRepository) FindByTeamAndOpportunity(ctx context.Context, teamID, opportunityID int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE team_id = $1 AND opportunity_id = $2`
	return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx, query, teamID, opportunityID))
}

// Update writes review-side state with a compare-and-swap on status and
// version: the row is only touched if it still carries expectedStatus and
// the version the caller read. The version guard also catches writes that
// leave the status unchanged, such as a second feedback append racing the
// first. A losing writer gets a Conflict and should re-read before
// retrying.
func (r *applicationRepository) Update(ctx context.Context, app *domain.Application, expectedStatus domain.ApplicationStatus) error {
	interviewJSON, err := marshalNullable(app.Interview)
	if err != nil {
		return err
	}
	offerJSON, err := marshalNullable(app.Offer)
	if err != nil {
		return err
	}

	ts := time.Now().UTC()
	query := `UPDATE applications SET status=$1, rejection_reason=$2, response_message=$3, recruiter_notes=$4,
	          response_deadline=$5, interview=$6, offer=$7, reviewed_at=$8, offer_made_at=$9, final_decision_at=$10,
	          updated_on=$11, version = version + 1
	          WHERE id=$12 AND status=$13 AND version=$14`
	res, err := exec(ctx, r.db).ExecContext(ctx, query,
		app.Status, app.RejectionReason, app.ResponseMessage, app.RecruiterNotes,
		app.ResponseDeadline, interviewJSON, offerJSON, app.ReviewedAt, app.OfferMadeAt, app.FinalDecisionAt, ts,
		app.ID, expectedStatus, app.Version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.Conflictf("application %d changed concurrently, expected status %s", app.ID, expectedStatus)
	}
	app.Version++
	app.UpdatedOn = ts.Format(time.RFC3339)
	return nil
}

// UpdateContent carries the same version guard as Update so two edits
// racing while the application is still SUBMITTED cannot overwrite each
// other.
func (r *applicationRepository) UpdateContent(ctx context.Context, app *domain.Application) error {
	ts := time.Now().UTC()
	query := `UPDATE applications SET cover_letter=$1, proposed_comp_cents=$2, proposed_equity_bps=$3,
	          availability_date=$4, proposal=$5, attachment_refs=$6, updated_on=$7, version = version + 1
	          WHERE id=$8 AND status=$9 AND version=$10`
	res, err := exec(ctx, r.db).ExecContext(ctx, query,
		app.CoverLetter, app.ProposedCompCents, app.ProposedEquityBps,
		app.AvailabilityDate, app.Proposal, pq.Array(app.AttachmentRefs), ts,
		app.ID, domain.ApplicationStatusSubmitted, app.Version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.Conflictf("application %d is no longer editable", app.ID)
	}
	app.Version++
	app.UpdatedOn = ts.Format(time.RFC3339)
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id int32) error {
	res, err := exec(ctx, r.db).ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundf("application %d not found", id)
	}
	return nil
}

func (r *applicationRepository) ListByTeam(ctx context.Context, teamID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error) {
	return r.list(ctx, "team_id", teamID, status, page, pageSize)
}

func (r *applicationRepository) ListByOpportunity(ctx context.Context, opportunityID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error) {
	return r.list(ctx, "opportunity_id", opportunityID, status, page, pageSize)
}

func (r *applicationRepository) list(ctx context.Context, column string, id int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE ` + column + ` = $1`

	args := []interface{}{id}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := exec(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY applied_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, *app)
	}
	return apps, count, rows.Err()
}

func (r *applicationRepository) ListReviewingPastDeadline(ctx context.Context, now string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications
	          WHERE status = $1 AND response_deadline IS NOT NULL AND response_deadline < $2`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, domain.ApplicationStatusReviewing, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *applicationRepository) scanOne(row *sql.Row) (*domain.Application, error) {
	app, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return app, err
}

func (r *applicationRepository) scanRow(row rowScanner) (*domain.Application, error) {
	app := &domain.Application{}
	var interviewJSON, offerJSON []byte
	err := row.Scan(
		&app.ID, &app.TeamID, &app.OpportunityID, &app.Status, &app.Version, &app.CoverLetter, &app.ProposedCompCents, &app.ProposedEquityBps,
		&app.AvailabilityDate, &app.Proposal, pq.Array(&app.AttachmentRefs), &app.RejectionReason, &app.ResponseMessage, &app.RecruiterNotes,
		&app.ResponseDeadline, &interviewJSON, &offerJSON, &app.AppliedAt, &app.ReviewedAt, &app.OfferMadeAt, &app.FinalDecisionAt, &app.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if len(interviewJSON) > 0 {
		app.Interview = &domain.Interview{}
		if err := json.Unmarshal(interviewJSON, app.Interview); err != nil {
			return nil, err
		}
	}
	if len(offerJSON) > 0 {
		app.Offer = &domain.Offer{}
		if err := json.Unmarshal(offerJSON, app.Offer); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func marshalNullable(v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case *domain.Interview:
		if t == nil {
			return nil, nil
		}
	case *domain.Offer:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
