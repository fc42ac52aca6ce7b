package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ezhulati/liftout-platform-sub000/internal/authz"
	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository"
)

type applicationService struct {
	appRepo  repository.ApplicationRepository
	oppRepo  repository.OpportunityRepository
	teamRepo repository.TeamRepository
	compRepo repository.CompanyRepository
	txm      repository.TxManager
	resolver *authz.Resolver
	notifier Notifier
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	oppRepo repository.OpportunityRepository,
	teamRepo repository.TeamRepository,
	compRepo repository.CompanyRepository,
	txm repository.TxManager,
	resolver *authz.Resolver,
	notifier Notifier,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		oppRepo:  oppRepo,
		teamRepo: teamRepo,
		compRepo: compRepo,
		txm:      txm,
		resolver: resolver,
		notifier: notifier,
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *applicationService) authorize(ctx context.Context, actorID int32, app *domain.Application, action authz.Action) error {
	allowed, reason, err := s.resolver.CanAct(ctx, actorID, app, action)
	if err != nil {
		return domain.Internalf(err, "authorization check failed")
	}
	if !allowed {
		return domain.Unauthorizedf("%s", reason)
	}
	return nil
}

func (s *applicationService) Create(ctx context.Context, input CreateApplicationInput, actorID int32) (*domain.Application, error) {
	app := &domain.Application{
		TeamID:            input.TeamID,
		OpportunityID:     input.OpportunityID,
		Status:            domain.ApplicationStatusSubmitted,
		CoverLetter:       input.CoverLetter,
		ProposedCompCents: input.ProposedCompCents,
		ProposedEquityBps: input.ProposedEquityBps,
		AvailabilityDate:  input.AvailabilityDate,
		Proposal:          input.Proposal,
		AttachmentRefs:    input.AttachmentRefs,
		AppliedAt:         now(),
	}

	if err := s.authorize(ctx, actorID, app, authz.ActionCreate); err != nil {
		return nil, err
	}

	opp, err := s.oppRepo.GetByID(ctx, input.OpportunityID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to load opportunity")
	}
	if opp == nil {
		return nil, domain.NotFoundf("opportunity %d not found", input.OpportunityID)
	}
	if opp.Status != domain.OpportunityStatusActive {
		return nil, domain.Validationf("opportunity %d is not accepting applications", opp.ID)
	}

	existing, err := s.appRepo.FindByTeamAndOpportunity(ctx, input.TeamID, input.OpportunityID)
	if err != nil {
		return nil, domain.Internalf(err, "failed to check existing applications")
	}
	if existing != nil {
		return nil, domain.Conflictf("team %d has already applied to opportunity %d", input.TeamID, input.OpportunityID)
	}

	err = s.txm.WithTx(ctx, func(ctx context.Context) error {
		if err := s.appRepo.Create(ctx, app); err != nil {
			return err
		}
		return s.oppRepo.IncrementApplications(ctx, opp.ID, 1)
	})
	if err != nil {
		// The pre-check above races with concurrent creates; the unique
		// index surfaces the loser as a Conflict, which must keep its kind.
		return nil, domain.WrapInternalf(err, "failed to create application")
	}

	logger.Info("Application created", "application_id", app.ID, "team_id", app.TeamID, "opportunity_id", app.OpportunityID)
	return app, nil
}

func (s *applicationService) GetByID(ctx context.Context, id, actorID int32) (*ApplicationDetail, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionView); err != nil {
		return nil, err
	}

	detail := &ApplicationDetail{Application: *app}
	if team, err := s.teamRepo.GetByID(ctx, app.TeamID); err == nil {
		detail.Team = team
	}
	if opp, err := s.oppRepo.GetByID(ctx, app.OpportunityID); err == nil {
		detail.Opportunity = opp
	}
	return detail, nil
}

func (s *applicationService) UpdateContent(ctx context.Context, id int32, input UpdateContentInput, actorID int32) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionUpdateContent); err != nil {
		return nil, err
	}

	app.CoverLetter = input.CoverLetter
	app.ProposedCompCents = input.ProposedCompCents
	app.ProposedEquityBps = input.ProposedEquityBps
	app.AvailabilityDate = input.AvailabilityDate
	app.Proposal = input.Proposal
	app.AttachmentRefs = input.AttachmentRefs

	if err := s.appRepo.UpdateContent(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id int32, input UpdateStatusInput, actorID int32) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionUpdateStatus); err != nil {
		return nil, err
	}

	if !domain.IsValidTransition(app.Status, input.NewStatus) {
		return nil, domain.Conflictf("invalid status transition from %s to %s", app.Status, input.NewStatus)
	}
	if input.NewStatus == domain.ApplicationStatusRejected && input.RejectionReason == "" {
		return nil, domain.Validationf("a rejection reason is required")
	}

	expected := app.Status
	ts := now()
	app.Status = input.NewStatus
	app.RejectionReason = input.RejectionReason
	app.ResponseMessage = input.ResponseMessage
	if input.RecruiterNotes != "" {
		app.RecruiterNotes = input.RecruiterNotes
	}
	if input.ResponseDeadline != nil {
		app.ResponseDeadline = input.ResponseDeadline
	}
	switch input.NewStatus {
	case domain.ApplicationStatusReviewing:
		app.ReviewedAt = &ts
	case domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected:
		app.FinalDecisionAt = &ts
	}

	if err := s.appRepo.Update(ctx, app, expected); err != nil {
		return nil, err
	}

	message := input.ResponseMessage
	if input.NewStatus == domain.ApplicationStatusRejected && message == "" {
		message = input.RejectionReason
	}
	s.notifyTeam(ctx, app, message)

	logger.Info("Application status updated", "application_id", app.ID, "from", expected, "to", app.Status)
	return app, nil
}

func (s *applicationService) Withdraw(ctx context.Context, id, actorID int32) error {
	app, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionWithdraw); err != nil {
		return err
	}

	err = s.txm.WithTx(ctx, func(ctx context.Context) error {
		if err := s.appRepo.Delete(ctx, app.ID); err != nil {
			return err
		}
		return s.oppRepo.IncrementApplications(ctx, app.OpportunityID, -1)
	})
	if err != nil {
		return domain.WrapInternalf(err, "failed to withdraw application")
	}

	logger.Info("Application withdrawn", "application_id", app.ID, "team_id", app.TeamID)
	return nil
}

func (s *applicationService) ScheduleInterview(ctx context.Context, id int32, input ScheduleInterviewInput, actorID int32) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionScheduleInterview); err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusReviewing {
		return nil, domain.Conflictf("application must be reviewing to schedule an interview, currently %s", app.Status)
	}
	if _, err := time.Parse(time.RFC3339, input.ScheduledAt); err != nil {
		return nil, domain.Validationf("scheduled_at must be an RFC3339 timestamp")
	}

	app.Status = domain.ApplicationStatusInterviewing
	app.Interview = &domain.Interview{
		ScheduledAt:     input.ScheduledAt,
		Format:          input.Format,
		DurationMinutes: input.DurationMinutes,
		Participants:    input.Participants,
		Feedback:        []domain.InterviewFeedback{},
	}

	if err := s.appRepo.Update(ctx, app, domain.ApplicationStatusReviewing); err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Interview scheduled for %s (%s, %d minutes)",
		input.ScheduledAt, input.Format, input.DurationMinutes)
	s.notifyTeam(ctx, app, summary)

	logger.Info("Interview scheduled", "application_id", app.ID, "scheduled_at", input.ScheduledAt)
	return app, nil
}

func (s *applicationService) AddInterviewFeedback(ctx context.Context, id int32, input FeedbackInput, actorID int32) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionAddFeedback); err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusInterviewing {
		return nil, domain.Conflictf("feedback can only be added while interviewing, currently %s", app.Status)
	}
	if app.Interview == nil {
		return nil, domain.Conflictf("application %d has no scheduled interview", app.ID)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}

	app.Interview.Feedback = append(app.Interview.Feedback, domain.InterviewFeedback{
		AuthorID:       actorID,
		Rating:         input.Rating,
		Strengths:      input.Strengths,
		Concerns:       input.Concerns,
		Recommendation: input.Recommendation,
		CreatedOn:      now(),
	})

	if err := s.appRepo.Update(ctx, app, domain.ApplicationStatusInterviewing); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) MakeOffer(ctx context.Context, id int32, input OfferInput, actorID int32) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, app, authz.ActionMakeOffer); err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusInterviewing {
		return nil, domain.Conflictf("application must be interviewing to receive an offer, currently %s", app.Status)
	}
	if input.CompensationCents <= 0 {
		return nil, domain.Validationf("offer compensation must be positive")
	}

	ts := now()
	app.Status = domain.ApplicationStatusAccepted
	app.OfferMadeAt = &ts
	app.FinalDecisionAt = &ts
	app.Offer = &domain.Offer{
		CompensationCents: input.CompensationCents,
		EquityBps:         input.EquityBps,
		Benefits:          input.Benefits,
		StartDate:         input.StartDate,
		SigningBonusCents: input.SigningBonusCents,
		ExpiresOn:         input.ExpiresOn,
	}

	err = s.txm.WithTx(ctx, func(ctx context.Context) error {
		if err := s.appRepo.Update(ctx, app, domain.ApplicationStatusInterviewing); err != nil {
			return err
		}
		return s.oppRepo.SetStatus(ctx, app.OpportunityID, domain.OpportunityStatusFilled)
	})
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Offer extended: $%.2f compensation", float64(input.CompensationCents)/100)
	if input.SigningBonusCents > 0 {
		summary += fmt.Sprintf(", $%.2f signing bonus", float64(input.SigningBonusCents)/100)
	}
	if input.EquityBps > 0 {
		summary += fmt.Sprintf(", %.2f%% equity", float64(input.EquityBps)/100)
	}
	s.notifyTeam(ctx, app, summary)

	logger.Info("Offer made", "application_id", app.ID, "opportunity_id", app.OpportunityID)
	return app, nil
}

func (s *applicationService) ListByTeam(ctx context.Context, teamID int32, status domain.ApplicationStatus, page, pageSize, actorID int32) ([]domain.Application, int32, error) {
	member, err := s.teamRepo.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return nil, 0, domain.Internalf(err, "failed to load team membership")
	}
	if member == nil || member.Status != domain.TeamMemberStatusActive {
		return nil, 0, domain.Unauthorizedf("Not an active member of team %d", teamID)
	}
	return s.appRepo.ListByTeam(ctx, teamID, status, page, pageSize)
}

func (s *applicationService) ListByOpportunity(ctx context.Context, opportunityID int32, status domain.ApplicationStatus, page, pageSize, actorID int32) ([]domain.Application, int32, error) {
	opp, err := s.oppRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, 0, domain.Internalf(err, "failed to load opportunity")
	}
	if opp == nil {
		return nil, 0, domain.NotFoundf("opportunity %d not found", opportunityID)
	}
	member, err := s.compRepo.GetMembership(ctx, opp.CompanyID, actorID)
	if err != nil {
		return nil, 0, domain.Internalf(err, "failed to load company membership")
	}
	if member == nil {
		return nil, 0, domain.Unauthorizedf("Not a member of the hiring company")
	}
	return s.appRepo.ListByOpportunity(ctx, opportunityID, status, page, pageSize)
}

func (s *applicationService) load(ctx context.Context, id int32) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to load application")
	}
	if app == nil {
		return nil, domain.NotFoundf("application %d not found", id)
	}
	return app, nil
}

// notifyTeam fans a status message out to every active member of the
// owning team. All lookups are best-effort: a failed read is logged and
// the primary operation still succeeds.
func (s *applicationService) notifyTeam(ctx context.Context, app *domain.Application, message string) {
	members, err := s.teamRepo.ListActiveMembers(ctx, app.TeamID)
	if err != nil {
		logger.Warn("Skipping status notification, failed to list team members", "application_id", app.ID, "error", err)
		return
	}
	if len(members) == 0 {
		return
	}

	var teamName, oppTitle, companyName string
	if team, err := s.teamRepo.GetByID(ctx, app.TeamID); err == nil && team != nil {
		teamName = team.Name
	}
	if opp, err := s.oppRepo.GetByID(ctx, app.OpportunityID); err == nil && opp != nil {
		oppTitle = opp.Title
		if comp, err := s.compRepo.GetByID(ctx, opp.CompanyID); err == nil && comp != nil {
			companyName = comp.Name
		}
	}

	s.notifier.NotifyApplicationStatus(members, teamName, oppTitle, companyName, app.Status, message)
}
