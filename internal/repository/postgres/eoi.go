package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type eoiRepository struct {
	db *sql.DB
}

func NewEOIRepository(db *sql.DB) repository.EOIRepository {
	return &eoiRepository{db: db}
}

const eoiColumns = `id, from_type, from_id, to_type, to_id, status, message, interest_level,
	specific_role, timeline, budget_range, created_by, responded_by, responded_at, created_on`

func (r *eoiRepository) Create(ctx context.Context, eoi *domain.ExpressionOfInterest) error {
	ts := time.Now().UTC()
	query := `INSERT INTO expressions_of_interest (from_type, from_id, to_type, to_id, status, message, interest_level,
	          specific_role, timeline, budget_range, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		eoi.FromType, eoi.FromID, eoi.ToType, eoi.ToID, eoi.Status, eoi.Message, eoi.InterestLevel,
		eoi.SpecificRole, eoi.Timeline, eoi.BudgetRange, eoi.CreatedBy, ts,
	).Scan(&eoi.ID)
	if isUniqueViolation(err) {
		return domain.Conflictf("a pending expression of interest already exists for this pair")
	}
	if err != nil {
		return err
	}
	eoi.CreatedOn = ts.Format(time.RFC3339)
	return nil
}

func (r *eoiRepository) GetByID(ctx context.Context, id int32) (*domain.ExpressionOfInterest, error) {
	query := `SELECT ` + eoiColumns + ` FROM expressions_of_interest WHERE id = $1`
	eoi, err := scanEOI(exec(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return eoi, err
}

// UpdateStatus only applies while the stored status still equals
// expectedStatus, so two responders racing on the same EOI cannot both win.
func (r *eoiRepository) UpdateStatus(ctx context.Context, eoi *domain.ExpressionOfInterest, expectedStatus domain.EOIStatus) error {
	query := `UPDATE expressions_of_interest SET status=$1, responded_by=$2, responded_at=$3 WHERE id=$4 AND status=$5`
	res, err := exec(ctx, r.db).ExecContext(ctx, query, eoi.Status, eoi.RespondedBy, eoi.RespondedAt, eoi.ID, expectedStatus)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.Conflictf("expression of interest %d was already resolved", eoi.ID)
	}
	return nil
}

func (r *eoiRepository) HasPending(ctx context.Context, from, to repository.PartyRef) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM expressions_of_interest
	          WHERE from_type=$1 AND from_id=$2 AND to_type=$3 AND to_id=$4 AND status=$5)`
	var exists bool
	err := exec(ctx, r.db).QueryRowContext(ctx, query, from.Type, from.ID, to.Type, to.ID, domain.EOIStatusPending).Scan(&exists)
	return exists, err
}

func (r *eoiRepository) ListSent(ctx context.Context, from []repository.PartyRef, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error) {
	if len(from) == 0 {
		return nil, 0, nil
	}
	var conds []string
	var args []interface{}
	for _, ref := range from {
		conds = append(conds, fmt.Sprintf("(from_type = $%d AND from_id = $%d)", len(args)+1, len(args)+2))
		args = append(args, ref.Type, ref.ID)
	}
	where := strings.Join(conds, " OR ")
	return r.listWhere(ctx, where, args, page, pageSize)
}

func (r *eoiRepository) ListReceived(ctx context.Context, teamIDs, companyIDs []int32, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error) {
	if len(teamIDs) == 0 && len(companyIDs) == 0 {
		return nil, 0, nil
	}
	where := `(to_type = $1 AND to_id = ANY($2))
	          OR (to_type = $3 AND to_id IN (SELECT id FROM opportunities WHERE company_id = ANY($4)))`
	args := []interface{}{
		domain.PartyTypeTeam, pq.Array(teamIDs),
		domain.PartyTypeOpportunity, pq.Array(companyIDs),
	}
	return r.listWhere(ctx, where, args, page, pageSize)
}

func (r *eoiRepository) listWhere(ctx context.Context, where string, args []interface{}, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error) {
	offset := (page - 1) * pageSize
	base := `SELECT ` + eoiColumns + ` FROM expressions_of_interest WHERE ` + where

	var count int32
	countQuery := "SELECT count(*) FROM (" + base + ") as sub"
	if err := exec(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := base + fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var eois []domain.ExpressionOfInterest
	for rows.Next() {
		eoi, err := scanEOI(rows)
		if err != nil {
			return nil, 0, err
		}
		eois = append(eois, *eoi)
	}
	return eois, count, rows.Err()
}

func (r *eoiRepository) ListPendingOlderThan(ctx context.Context, cutoff string) ([]domain.ExpressionOfInterest, error) {
	query := `SELECT ` + eoiColumns + ` FROM expressions_of_interest WHERE status = $1 AND created_on < $2`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, domain.EOIStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eois []domain.ExpressionOfInterest
	for rows.Next() {
		eoi, err := scanEOI(rows)
		if err != nil {
			return nil, err
		}
		eois = append(eois, *eoi)
	}
	return eois, rows.Err()
}

func scanEOI(row rowScanner) (*domain.ExpressionOfInterest, error) {
	eoi := &domain.ExpressionOfInterest{}
	err := row.Scan(
		&eoi.ID, &eoi.FromType, &eoi.FromID, &eoi.ToType, &eoi.ToID, &eoi.Status, &eoi.Message, &eoi.InterestLevel,
		&eoi.SpecificRole, &eoi.Timeline, &eoi.BudgetRange, &eoi.CreatedBy, &eoi.RespondedBy, &eoi.RespondedAt, &eoi.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return eoi, nil
}
