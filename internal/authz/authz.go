package authz

import (
	"context"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

// Action is the closed set of operations the resolver can decide on.
type Action string

const (
	ActionCreate            Action = "create"
	ActionUpdateContent     Action = "update_content"
	ActionWithdraw          Action = "withdraw"
	ActionUpdateStatus      Action = "update_status"
	ActionScheduleInterview Action = "schedule_interview"
	ActionAddFeedback       Action = "add_feedback"
	ActionMakeOffer         Action = "make_offer"
	ActionView              Action = "view"
)

// Resolver is the single decision point for application authorization.
// A denial is a result, not an error: the returned reason is surfaced
// verbatim to callers. The error return is reserved for repository
// failures.
type Resolver struct {
	teamRepo repository.TeamRepository
	compRepo repository.CompanyRepository
	oppRepo  repository.OpportunityRepository
}

func NewResolver(
	teamRepo repository.TeamRepository,
	compRepo repository.CompanyRepository,
	oppRepo repository.OpportunityRepository,
) *Resolver {
	return &Resolver{teamRepo: teamRepo, compRepo: compRepo, oppRepo: oppRepo}
}

// CanAct decides whether actorID may perform action on app.
func (r *Resolver) CanAct(ctx context.Context, actorID int32, app *domain.Application, action Action) (bool, string, error) {
	switch action {
	case ActionCreate, ActionUpdateContent, ActionWithdraw:
		return r.canActForTeam(ctx, actorID, app, action)
	case ActionUpdateStatus, ActionScheduleInterview, ActionAddFeedback, ActionMakeOffer:
		return r.canActForCompany(ctx, actorID, app, action)
	case ActionView:
		return r.canView(ctx, actorID, app)
	default:
		return false, "Unknown action", nil
	}
}

func (r *Resolver) canActForTeam(ctx context.Context, actorID int32, app *domain.Application, action Action) (bool, string, error) {
	member, err := r.teamRepo.GetMembership(ctx, app.TeamID, actorID)
	if err != nil {
		return false, "", err
	}
	if member == nil || member.Status != domain.TeamMemberStatusActive {
		return false, "Not an active member of the applying team", nil
	}
	if !member.IsLead && !member.IsAdmin {
		return false, "Only team leads or admins may act on applications", nil
	}
	if action == ActionUpdateContent && app.Status != domain.ApplicationStatusSubmitted {
		return false, "Application content can only be edited while submitted", nil
	}
	if action == ActionWithdraw && app.Status == domain.ApplicationStatusAccepted {
		return false, "An accepted application cannot be withdrawn", nil
	}
	return true, "", nil
}

func (r *Resolver) canActForCompany(ctx context.Context, actorID int32, app *domain.Application, action Action) (bool, string, error) {
	opp, err := r.oppRepo.GetByID(ctx, app.OpportunityID)
	if err != nil {
		return false, "", err
	}
	if opp == nil {
		return false, "Opportunity no longer exists", nil
	}
	member, err := r.compRepo.GetMembership(ctx, opp.CompanyID, actorID)
	if err != nil {
		return false, "", err
	}
	if member == nil {
		return false, "Not a member of the hiring company", nil
	}
	if action == ActionMakeOffer && !member.CanAuthorizeOffer() {
		return false, "Only company owners or admins may make offers", nil
	}
	return true, "", nil
}

func (r *Resolver) canView(ctx context.Context, actorID int32, app *domain.Application) (bool, string, error) {
	member, err := r.teamRepo.GetMembership(ctx, app.TeamID, actorID)
	if err != nil {
		return false, "", err
	}
	if member != nil && member.Status == domain.TeamMemberStatusActive {
		return true, "", nil
	}
	opp, err := r.oppRepo.GetByID(ctx, app.OpportunityID)
	if err != nil {
		return false, "", err
	}
	if opp != nil {
		cm, err := r.compRepo.GetMembership(ctx, opp.CompanyID, actorID)
		if err != nil {
			return false, "", err
		}
		if cm != nil {
			return true, "", nil
		}
	}
	return false, "Not authorized to view this application", nil
}
