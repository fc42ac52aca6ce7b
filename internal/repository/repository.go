package repository

import (
	"context"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
)

// PartyRef identifies one side of an expression of interest.
type PartyRef struct {
	Type domain.PartyType
	ID   int32
}

// TxManager runs a function inside a single database transaction. Repository
// calls made with the context it passes to fn join that transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Get* methods return (nil, nil) when the row does not exist; errors are
// reserved for infrastructure failures.

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	FindByTeamAndOpportunity(ctx context.Context, teamID, opportunityID int32) (*domain.Application, error)
	// Update is a conditional write: it only applies when the stored status
	// still equals expectedStatus and the stored version equals the version
	// on app. A stale writer gets a Conflict error.
	Update(ctx context.Context, app *domain.Application, expectedStatus domain.ApplicationStatus) error
	// UpdateContent rewrites the team-owned fields under the same version
	// guard, and only while the application is still SUBMITTED.
	UpdateContent(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id int32) error
	ListByTeam(ctx context.Context, teamID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error)
	ListByOpportunity(ctx context.Context, opportunityID int32, status domain.ApplicationStatus, page, pageSize int32) ([]domain.Application, int32, error)
	ListReviewingPastDeadline(ctx context.Context, now string) ([]domain.Application, error)
}

type OpportunityRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Opportunity, error)
	SetStatus(ctx context.Context, id int32, status domain.OpportunityStatus) error
	// IncrementApplications applies an atomic in-database delta to
	// applications_count. The counter never goes below zero.
	IncrementApplications(ctx context.Context, id, delta int32) error
}

type TeamRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Team, error)
	GetMembership(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error)
	ListMembershipsByUser(ctx context.Context, userID int32) ([]domain.TeamMember, error)
	ListActiveMembers(ctx context.Context, teamID int32) ([]domain.User, error)
	ListRepresentatives(ctx context.Context, teamID int32) ([]domain.User, error)
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Company, error)
	GetMembership(ctx context.Context, companyID, userID int32) (*domain.CompanyMember, error)
	ListMembershipsByUser(ctx context.Context, userID int32) ([]domain.CompanyMember, error)
	ListMembers(ctx context.Context, companyID int32) ([]domain.User, error)
}

type EOIRepository interface {
	Create(ctx context.Context, eoi *domain.ExpressionOfInterest) error
	GetByID(ctx context.Context, id int32) (*domain.ExpressionOfInterest, error)
	// UpdateStatus is conditional on the stored status still being
	// expectedStatus, so concurrent responders cannot both win.
	UpdateStatus(ctx context.Context, eoi *domain.ExpressionOfInterest, expectedStatus domain.EOIStatus) error
	HasPending(ctx context.Context, from, to PartyRef) (bool, error)
	ListSent(ctx context.Context, from []PartyRef, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error)
	ListReceived(ctx context.Context, teamIDs, companyIDs []int32, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error)
	ListPendingOlderThan(ctx context.Context, cutoff string) ([]domain.ExpressionOfInterest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}
