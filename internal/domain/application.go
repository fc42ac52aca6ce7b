package domain

type ApplicationStatus string

const (
	ApplicationStatusSubmitted    ApplicationStatus = "SUBMITTED"
	ApplicationStatusReviewing    ApplicationStatus = "REVIEWING"
	ApplicationStatusInterviewing ApplicationStatus = "INTERVIEWING"
	ApplicationStatusAccepted     ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected     ApplicationStatus = "REJECTED"
)

// Application is one team's bid for one opportunity. At most one
// non-withdrawn application may exist per (team, opportunity) pair.
// Version increments on every write; conditional updates guard on the
// version the caller read.
type Application struct {
	ID            int32             `json:"id"`
	TeamID        int32             `json:"team_id"`
	OpportunityID int32             `json:"opportunity_id"`
	Status        ApplicationStatus `json:"status"`
	Version       int32             `json:"version"`

	// Content fields, owned by the submitting team. Mutable only while
	// the application is still SUBMITTED.
	CoverLetter       string   `json:"cover_letter"`
	ProposedCompCents int64    `json:"proposed_comp_cents"`
	ProposedEquityBps int32    `json:"proposed_equity_bps"`
	AvailabilityDate  string   `json:"availability_date"`
	Proposal          string   `json:"proposal"`
	AttachmentRefs    []string `json:"attachment_refs,omitempty"`

	// Review artifacts, owned by the company side.
	RejectionReason  string  `json:"rejection_reason,omitempty"`
	ResponseMessage  string  `json:"response_message,omitempty"`
	RecruiterNotes   string  `json:"recruiter_notes,omitempty"`
	ResponseDeadline *string `json:"response_deadline,omitempty"`

	Interview *Interview `json:"interview,omitempty"`
	Offer     *Offer     `json:"offer,omitempty"`

	AppliedAt       string  `json:"applied_at"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	OfferMadeAt     *string `json:"offer_made_at,omitempty"`
	FinalDecisionAt *string `json:"final_decision_at,omitempty"`
	UpdatedOn       string  `json:"updated_on"`
}

// Interview is created when the company schedules the team. Feedback is
// append-only once the application reaches INTERVIEWING.
type Interview struct {
	ScheduledAt     string              `json:"scheduled_at"`
	Format          string              `json:"format"` // e.g. ONSITE, VIDEO, PHONE
	DurationMinutes int32               `json:"duration_minutes"`
	Participants    []string            `json:"participants"`
	Feedback        []InterviewFeedback `json:"feedback"`
}

type InterviewFeedback struct {
	AuthorID       int32  `json:"author_id"`
	Rating         int32  `json:"rating"` // 1..5
	Strengths      string `json:"strengths"`
	Concerns       string `json:"concerns"`
	Recommendation string `json:"recommendation"` // e.g. HIRE, NO_HIRE, HOLD
	CreatedOn      string `json:"created_on"`
}

// Offer is created exactly once, on the transition to ACCEPTED.
type Offer struct {
	CompensationCents int64  `json:"compensation_cents"`
	EquityBps         int32  `json:"equity_bps"`
	Benefits          string `json:"benefits"`
	StartDate         string `json:"start_date"`
	SigningBonusCents int64  `json:"signing_bonus_cents"`
	ExpiresOn         string `json:"expires_on"`
}

// ApplicationFilter narrows list queries.
type ApplicationFilter struct {
	TeamID        int32
	OpportunityID int32
	Status        ApplicationStatus // empty means all
}
