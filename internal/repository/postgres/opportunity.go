package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type opportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) repository.OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) GetByID(ctx context.Context, id int32) (*domain.Opportunity, error) {
	opp := &domain.Opportunity{}
	query := `SELECT id, company_id, title, description, status, team_size_min, team_size_max,
	          comp_range_low_cents, comp_range_high_cents, applications_count, created_on
	          FROM opportunities WHERE id = $1`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&opp.ID, &opp.CompanyID, &opp.Title, &opp.Description, &opp.Status, &opp.TeamSizeMin, &opp.TeamSizeMax,
		&opp.CompRangeLowCents, &opp.CompRangeHighCents, &opp.ApplicationsCount, &opp.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return opp, nil
}

func (r *opportunityRepository) SetStatus(ctx context.Context, id int32, status domain.OpportunityStatus) error {
	query := `UPDATE opportunities SET status = $1, updated_on = $2 WHERE id = $3`
	res, err := exec(ctx, r.db).ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundf("opportunity %d not found", id)
	}
	return nil
}

// IncrementApplications applies the delta inside the database so concurrent
// writers cannot lose updates. GREATEST keeps the counter from going
// negative on a repeated decrement.
func (r *opportunityRepository) IncrementApplications(ctx context.Context, id, delta int32) error {
	query := `UPDATE opportunities SET applications_count = GREATEST(applications_count + $1, 0), updated_on = $2 WHERE id = $3`
	res, err := exec(ctx, r.db).ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundf("opportunity %d not found", id)
	}
	return nil
}
