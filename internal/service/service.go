package service

import (
	"context"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
)

type CreateApplicationInput struct {
	TeamID            int32    `json:"team_id"`
	OpportunityID     int32    `json:"opportunity_id"`
	CoverLetter       string   `json:"cover_letter"`
	ProposedCompCents int64    `json:"proposed_comp_cents"`
	ProposedEquityBps int32    `json:"proposed_equity_bps"`
	AvailabilityDate  string   `json:"availability_date"`
	Proposal          string   `json:"proposal"`
	AttachmentRefs    []string `json:"attachment_refs"`
}

type UpdateContentInput struct {
	CoverLetter       string   `json:"cover_letter"`
	ProposedCompCents int64    `json:"proposed_comp_cents"`
	ProposedEquityBps int32    `json:"proposed_equity_bps"`
	AvailabilityDate  string   `json:"availability_date"`
	Proposal          string   `json:"proposal"`
	AttachmentRefs    []string `json:"attachment_refs"`
}

type UpdateStatusInput struct {
	NewStatus        domain.ApplicationStatus `json:"new_status"`
	RejectionReason  string                   `json:"rejection_reason"`
	ResponseMessage  string                   `json:"response_message"`
	RecruiterNotes   string                   `json:"recruiter_notes"`
	ResponseDeadline *string                  `json:"response_deadline"`
}

type ScheduleInterviewInput struct {
	ScheduledAt     string   `json:"scheduled_at"`
	Format          string   `json:"format"`
	DurationMinutes int32    `json:"duration_minutes"`
	Participants    []string `json:"participants"`
}

type FeedbackInput struct {
	Rating         int32  `json:"rating"`
	Strengths      string `json:"strengths"`
	Concerns       string `json:"concerns"`
	Recommendation string `json:"recommendation"`
}

type OfferInput struct {
	CompensationCents int64  `json:"compensation_cents"`
	EquityBps         int32  `json:"equity_bps"`
	Benefits          string `json:"benefits"`
	StartDate         string `json:"start_date"`
	SigningBonusCents int64  `json:"signing_bonus_cents"`
	ExpiresOn         string `json:"expires_on"`
}

// ApplicationDetail joins an application with its team and opportunity
// projections for read paths.
type ApplicationDetail struct {
	Application domain.Application  `json:"application"`
	Team        *domain.Team        `json:"team,omitempty"`
	Opportunity *domain.Opportunity `json:"opportunity,omitempty"`
}

type ApplicationService interface {
	Create(ctx context.Context, input CreateApplicationInput, actorID int32) (*domain.Application, error)
	GetByID(ctx context.Context, id, actorID int32) (*ApplicationDetail, error)
	UpdateContent(ctx context.Context, id int32, input UpdateContentInput, actorID int32) (*domain.Application, error)
	UpdateStatus(ctx context.Context, id int32, input UpdateStatusInput, actorID int32) (*domain.Application, error)
	Withdraw(ctx context.Context, id, actorID int32) error
	ScheduleInterview(ctx context.Context, id int32, input ScheduleInterviewInput, actorID int32) (*domain.Application, error)
	AddInterviewFeedback(ctx context.Context, id int32, input FeedbackInput, actorID int32) (*domain.Application, error)
	MakeOffer(ctx context.Context, id int32, input OfferInput, actorID int32) (*domain.Application, error)
	ListByTeam(ctx context.Context, teamID int32, status domain.ApplicationStatus, page, pageSize, actorID int32) ([]domain.Application, int32, error)
	ListByOpportunity(ctx context.Context, opportunityID int32, status domain.ApplicationStatus, page, pageSize, actorID int32) ([]domain.Application, int32, error)
}

type CreateEOIInput struct {
	FromType      domain.PartyType `json:"from_type"`
	FromID        int32            `json:"from_id"`
	ToType        domain.PartyType `json:"to_type"`
	ToID          int32            `json:"to_id"`
	Message       string           `json:"message"`
	InterestLevel string           `json:"interest_level"`
	SpecificRole  string           `json:"specific_role"`
	Timeline      string           `json:"timeline"`
	BudgetRange   string           `json:"budget_range"`
}

type EOIService interface {
	Create(ctx context.Context, input CreateEOIInput, actorID int32) (*domain.ExpressionOfInterest, error)
	Respond(ctx context.Context, id int32, response domain.EOIStatus, actorID int32) (*domain.ExpressionOfInterest, error)
	ListForUser(ctx context.Context, userID int32, direction domain.EOIDirection, page, pageSize int32) ([]domain.ExpressionOfInterest, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// Notifier delivers status-change messages to recipients. Implementations
// must be safe to call without awaiting delivery: enqueueing never blocks
// the caller and delivery failures never surface.
type Notifier interface {
	NotifyApplicationStatus(recipients []domain.User, teamName, opportunityTitle, companyName string, status domain.ApplicationStatus, message string)
	NotifyExpressionOfInterest(recipients []domain.User, interestedPartyName, targetName, message string, eoiID int32)
}

type EmailService interface {
	SendApplicationStatusNotification(ctx context.Context, email, name, teamName, opportunityTitle, companyName string, status domain.ApplicationStatus, message string) error
	SendEOINotification(ctx context.Context, email, name, interestedPartyName, targetName, message string) error
}

type PushService interface {
	SendPush(ctx context.Context, deviceToken, title, body string) error
}
