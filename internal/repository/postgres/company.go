package postgres

import (
	"context"
	"database/sql"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id int32) (*domain.Company, error) {
	c := &domain.Company{}
	query := `SELECT id, name, industry, location, created_on FROM companies WHERE id = $1`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Industry, &c.Location, &c.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *companyRepository) GetMembership(ctx context.Context, companyID, userID int32) (*domain.CompanyMember, error) {
	m := &domain.CompanyMember{}
	query := `SELECT company_id, user_id, role, joined_on FROM company_members WHERE company_id = $1 AND user_id = $2`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, companyID, userID).Scan(&m.CompanyID, &m.UserID, &m.Role, &m.JoinedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *companyRepository) ListMembershipsByUser(ctx context.Context, userID int32) ([]domain.CompanyMember, error) {
	query := `SELECT company_id, user_id, role, joined_on FROM company_members WHERE user_id = $1`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.CompanyMember
	for rows.Next() {
		var m domain.CompanyMember
		if err := rows.Scan(&m.CompanyID, &m.UserID, &m.Role, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *companyRepository) ListMembers(ctx context.Context, companyID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.name, u.phone_number, u.avatar_url, COALESCE(u.device_token, ''), u.created_on, u.updated_on
	          FROM users u JOIN company_members cm ON cm.user_id = u.id
	          WHERE cm.company_id = $1`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhoneNumber, &u.AvatarURL, &u.DeviceToken, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
