package postgres

import (
	"context"
	"database/sql"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	team := &domain.Team{}
	query := `SELECT id, name, description, size, industry, location, created_on FROM teams WHERE id = $1`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.Description, &team.Size, &team.Industry, &team.Location, &team.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *teamRepository) GetMembership(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error) {
	m := &domain.TeamMember{}
	query := `SELECT team_id, user_id, status, is_lead, is_admin, title, joined_on
	          FROM team_members WHERE team_id = $1 AND user_id = $2`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, teamID, userID).Scan(
		&m.TeamID, &m.UserID, &m.Status, &m.IsLead, &m.IsAdmin, &m.Title, &m.JoinedOn,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *teamRepository) ListMembershipsByUser(ctx context.Context, userID int32) ([]domain.TeamMember, error) {
	query := `SELECT team_id, user_id, status, is_lead, is_admin, title, joined_on
	          FROM team_members WHERE user_id = $1 AND status = $2`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, userID, domain.TeamMemberStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Status, &m.IsLead, &m.IsAdmin, &m.Title, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamRepository) ListActiveMembers(ctx context.Context, teamID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.name, u.phone_number, u.avatar_url, COALESCE(u.device_token, ''), u.created_on, u.updated_on
	          FROM users u JOIN team_members tm ON tm.user_id = u.id
	          WHERE tm.team_id = $1 AND tm.status = $2`
	return r.queryUsers(ctx, query, teamID, domain.TeamMemberStatusActive)
}

func (r *teamRepository) ListRepresentatives(ctx context.Context, teamID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.email, u.name, u.phone_number, u.avatar_url, COALESCE(u.device_token, ''), u.created_on, u.updated_on
	          FROM users u JOIN team_members tm ON tm.user_id = u.id
	          WHERE tm.team_id = $1 AND tm.status = $2 AND (tm.is_lead OR tm.is_admin)`
	return r.queryUsers(ctx, query, teamID, domain.TeamMemberStatusActive)
}

func (r *teamRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]domain.User, error) {
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
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
