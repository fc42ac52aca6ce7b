package service

import (
	"context"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type eoiService struct {
	eoiRepo  repository.EOIRepository
	teamRepo repository.TeamRepository
	compRepo repository.CompanyRepository
	oppRepo  repository.OpportunityRepository
	notifier Notifier
}

func NewEOIService(
	eoiRepo repository.EOIRepository,
	teamRepo repository.TeamRepository,
	compRepo repository.CompanyRepository,
	oppRepo repository.OpportunityRepository,
	notifier Notifier,
) EOIService {
	return &eoiService{
		eoiRepo:  eoiRepo,
		teamRepo: teamRepo,
		compRepo: compRepo,
		oppRepo:  oppRepo,
		notifier: notifier,
	}
}

func (s *eoiService) Create(ctx context.Context, input CreateEOIInput, actorID int32) (*domain.ExpressionOfInterest, error) {
	fromID, err := s.resolveFromParty(ctx, input, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.validateTarget(ctx, input.FromType, fromID, input.ToType, input.ToID); err != nil {
		return nil, err
	}

	from := repository.PartyRef{Type: input.FromType, ID: fromID}
	to := repository.PartyRef{Type: input.ToType, ID: input.ToID}
	pending, err := s.eoiRepo.HasPending(ctx, from, to)
	if err != nil {
		return nil, domain.Internalf(err, "failed to check pending interest")
	}
	if pending {
		return nil, domain.Conflictf("a pending expression of interest already exists for this pair")
	}

	eoi := &domain.ExpressionOfInterest{
		FromType:      input.FromType,
		FromID:        fromID,
		ToType:        input.ToType,
		ToID:          input.ToID,
		Status:        domain.EOIStatusPending,
		Message:       input.Message,
		InterestLevel: input.InterestLevel,
		SpecificRole:  input.SpecificRole,
		Timeline:      input.Timeline,
		BudgetRange:   input.BudgetRange,
		CreatedBy:     actorID,
	}
	if err := s.eoiRepo.Create(ctx, eoi); err != nil {
		// HasPending races with concurrent creates; the partial unique
		// index surfaces the loser as a Conflict, which must keep its kind.
		return nil, domain.WrapInternalf(err, "failed to create expression of interest")
	}

	s.notifyTarget(ctx, eoi)

	logger.Info("Expression of interest created", "eoi_id", eoi.ID,
		"from", string(eoi.FromType), "from_id", eoi.FromID, "to", string(eoi.ToType), "to_id", eoi.ToID)
	return eoi, nil
}

// resolveFromParty verifies the actor may speak for the initiating party
// and returns the resolved party id. When the input omits from_id and the
// actor represents exactly one matching party, that party is used.
func (s *eoiService) resolveFromParty(ctx context.Context, input CreateEOIInput, actorID int32) (int32, error) {
	switch input.FromType {
	case domain.PartyTypeTeam:
		memberships, err := s.teamRepo.ListMembershipsByUser(ctx, actorID)
		if err != nil {
			return 0, domain.Internalf(err, "failed to load team memberships")
		}
		var candidates []int32
		for i := range memberships {
			if memberships[i].CanRepresentTeam() {
				if input.FromID != 0 && memberships[i].TeamID == input.FromID {
					return input.FromID, nil
				}
				candidates = append(candidates, memberships[i].TeamID)
			}
		}
		if input.FromID != 0 {
			return 0, domain.Unauthorizedf("Only team leads or admins may express interest for team %d", input.FromID)
		}
		if len(candidates) == 1 {
			return candidates[0], nil
		}
		if len(candidates) == 0 {
			return 0, domain.Unauthorizedf("Not a lead or admin of any team")
		}
		return 0, domain.Validationf("from_id is required when representing multiple teams")

	case domain.PartyTypeCompany:
		memberships, err := s.compRepo.ListMembershipsByUser(ctx, actorID)
		if err != nil {
			return 0, domain.Internalf(err, "failed to load company memberships")
		}
		if input.FromID != 0 {
			for i := range memberships {
				if memberships[i].CompanyID == input.FromID {
					return input.FromID, nil
				}
			}
			return 0, domain.Unauthorizedf("Not a member of company %d", input.FromID)
		}
		if len(memberships) == 1 {
			return memberships[0].CompanyID, nil
		}
		if len(memberships) == 0 {
			return 0, domain.Unauthorizedf("Not a member of any company")
		}
		return 0, domain.Validationf("from_id is required when belonging to multiple companies")

	default:
		return 0, domain.Validationf("from_type must be TEAM or COMPANY")
	}
}

func (s *eoiService) validateTarget(ctx context.Context, fromType domain.PartyType, fromID int32, toType domain.PartyType, toID int32) error {
	switch toType {
	case domain.PartyTypeTeam:
		team, err := s.teamRepo.GetByID(ctx, toID)
		if err != nil {
			return domain.Internalf(err, "failed to load target team")
		}
		if team == nil {
			return domain.NotFoundf("team %d not found", toID)
		}
	case domain.PartyTypeOpportunity:
		opp, err := s.oppRepo.GetByID(ctx, toID)
		if err != nil {
			return domain.Internalf(err, "failed to load target opportunity")
		}
		if opp == nil {
			return domain.NotFoundf("opportunity %d not found", toID)
		}
		// A company cannot court its own posting.
		if fromType == domain.PartyTypeCompany && opp.CompanyID == fromID {
			return domain.Validationf("a company cannot express interest in its own opportunity")
		}
	default:
		return domain.Validationf("to_type must be TEAM or OPPORTUNITY")
	}
	return nil
}

func (s *eoiService) Respond(ctx context.Context, id int32, response domain.EOIStatus, actorID int32) (*domain.ExpressionOfInterest, error) {
	if response != domain.EOIStatusAccepted && response != domain.EOIStatusDeclined {
		return nil, domain.Validationf("response must be ACCEPTED or DECLINED")
	}

	eoi, err := s.eoiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to load expression of interest")
	}
	if eoi == nil {
		return nil, domain.NotFoundf("expression of interest %d not found", id)
	}
	if eoi.Status != domain.EOIStatusPending {
		return nil, domain.Conflictf("expression of interest %d was already %s", id, eoi.Status)
	}

	if err := s.authorizeResponder(ctx, eoi, actorID); err != nil {
		return nil, err
	}

	ts := now()
	eoi.Status = response
	eoi.RespondedBy = &actorID
	eoi.RespondedAt = &ts
	if err := s.eoiRepo.UpdateStatus(ctx, eoi, domain.EOIStatusPending); err != nil {
		return nil, err
	}

	s.notifyInitiator(ctx, eoi)

	logger.Info("Expression of interest resolved", "eoi_id", eoi.ID, "response", string(response))
	return eoi, nil
}

func (s *eoiService) authorizeResponder(ctx context.Context, eoi *domain.ExpressionOfInterest, actorID int32) error {
	switch eoi.ToType {
	case domain.PartyTypeTeam:
		member, err := s.teamRepo.GetMembership(ctx, eoi.ToID, actorID)
		if err != nil {
			return domain.Internalf(err, "failed to load team membership")
		}
		if member == nil || !member.CanRepresentTeam() {
			return domain.Unauthorizedf("Only team leads or admins may respond for the team")
		}
	case domain.PartyTypeOpportunity:
		opp, err := s.oppRepo.GetByID(ctx, eoi.ToID)
		if err != nil {
			return domain.Internalf(err, "failed to load opportunity")
		}
		if opp == nil {
			return domain.NotFoundf("opportunity %d not found", eoi.ToID)
		}
		member, err := s.compRepo.GetMembership(ctx, opp.CompanyID, actorID)
		if err != nil {
			return domain.Internalf(err, "failed to load company membership")
		}
		if member == nil {
			return domain.Unauthorizedf("Not a member of the company that owns this opportunity")
		}
	default:
		return domain.Validationf("unknown target type %s", eoi.ToType)
	}
	return nil
}

func (s *eoiService) ListForUser(ctx context.Context, userID int32, direction domain.EOIDirection, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error) {
	teamMemberships, err := s.teamRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, 0, domain.Internalf(err, "failed to load team memberships")
	}
	companyMemberships, err := s.compRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, 0, domain.Internalf(err, "failed to load company memberships")
	}

	var teamIDs, companyIDs []int32
	for i := range teamMemberships {
		teamIDs = append(teamIDs, teamMemberships[i].TeamID)
	}
	for i := range companyMemberships {
		companyIDs = append(companyIDs, companyMemberships[i].CompanyID)
	}

	switch direction {
	case domain.EOIDirectionSent:
		var from []repository.PartyRef
		for _, id := range teamIDs {
			from = append(from, repository.PartyRef{Type: domain.PartyTypeTeam, ID: id})
		}
		for _, id := range companyIDs {
			from = append(from, repository.PartyRef{Type: domain.PartyTypeCompany, ID: id})
		}
		return s.eoiRepo.ListSent(ctx, from, page, pageSize)
	case domain.EOIDirectionReceived:
		return s.eoiRepo.ListReceived(ctx, teamIDs, companyIDs, page, pageSize)
	default:
		return nil, 0, domain.Validationf("direction must be SENT or RECEIVED")
	}
}

// notifyTarget fans the new EOI out to the target party's authorized
// representatives: team leads/admins for a team target, all company users
// for an opportunity target.
func (s *eoiService) notifyTarget(ctx context.Context, eoi *domain.ExpressionOfInterest) {
	var recipients []domain.User
	var targetName string
	var err error

	switch eoi.ToType {
	case domain.PartyTypeTeam:
		recipients, err = s.teamRepo.ListRepresentatives(ctx, eoi.ToID)
		if team, terr := s.teamRepo.GetByID(ctx, eoi.ToID); terr == nil && team != nil {
			targetName = team.Name
		}
	case domain.PartyTypeOpportunity:
		opp, oerr := s.oppRepo.GetByID(ctx, eoi.ToID)
		if oerr != nil || opp == nil {
			logger.Warn("Skipping EOI notification, opportunity lookup failed", "eoi_id", eoi.ID, "error", oerr)
			return
		}
		targetName = opp.Title
		recipients, err = s.compRepo.ListMembers(ctx, opp.CompanyID)
	}
	if err != nil {
		logger.Warn("Skipping EOI notification, recipient lookup failed", "eoi_id", eoi.ID, "error", err)
		return
	}

	s.notifier.NotifyExpressionOfInterest(recipients, s.fromPartyName(ctx, eoi), targetName, eoi.Message, eoi.ID)
}

// notifyInitiator tells the sending party's representatives how their EOI
// was resolved.
func (s *eoiService) notifyInitiator(ctx context.Context, eoi *domain.ExpressionOfInterest) {
	var recipients []domain.User
	var err error
	switch eoi.FromType {
	case domain.PartyTypeTeam:
		recipients, err = s.teamRepo.ListRepresentatives(ctx, eoi.FromID)
	case domain.PartyTypeCompany:
		recipients, err = s.compRepo.ListMembers(ctx, eoi.FromID)
	}
	if err != nil {
		logger.Warn("Skipping EOI response notification, recipient lookup failed", "eoi_id", eoi.ID, "error", err)
		return
	}

	message := "Your expression of interest was " + string(eoi.Status)
	s.notifier.NotifyExpressionOfInterest(recipients, s.fromPartyName(ctx, eoi), s.targetName(ctx, eoi), message, eoi.ID)
}

func (s *eoiService) fromPartyName(ctx context.Context, eoi *domain.ExpressionOfInterest) string {
	switch eoi.FromType {
	case domain.PartyTypeTeam:
		if team, err := s.teamRepo.GetByID(ctx, eoi.FromID); err == nil && team != nil {
			return team.Name
		}
	case domain.PartyTypeCompany:
		if comp, err := s.compRepo.GetByID(ctx, eoi.FromID); err == nil && comp != nil {
			return comp.Name
		}
	}
	return ""
}

func (s *eoiService) targetName(ctx context.Context, eoi *domain.ExpressionOfInterest) string {
	switch eoi.ToType {
	case domain.PartyTypeTeam:
		if team, err := s.teamRepo.GetByID(ctx, eoi.ToID); err == nil && team != nil {
			return team.Name
		}
	case domain.PartyTypeOpportunity:
		if opp, err := s.oppRepo.GetByID(ctx, eoi.ToID); err == nil && opp != nil {
			return opp.Title
		}
	}
	return ""
}
