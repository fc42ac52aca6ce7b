package domain

type PartyType string

const (
	PartyTypeTeam        PartyType = "TEAM"
	PartyTypeCompany     PartyType = "COMPANY"
	PartyTypeOpportunity PartyType = "OPPORTUNITY"
)

type EOIStatus string

const (
	EOIStatusPending  EOIStatus = "PENDING"
	EOIStatusAccepted EOIStatus = "ACCEPTED"
	EOIStatusDeclined EOIStatus = "DECLINED"
)

// ExpressionOfInterest is a lightweight pre-application signal between a
// team and a company (or a specific opportunity). At most one PENDING EOI
// may exist for a given (from, to) pair.
type ExpressionOfInterest struct {
	ID       int32     `json:"id"`
	FromType PartyType `json:"from_type"` // TEAM or COMPANY
	FromID   int32     `json:"from_id"`
	ToType   PartyType `json:"to_type"` // TEAM or OPPORTUNITY
	ToID     int32     `json:"to_id"`
	Status   EOIStatus `json:"status"`

	Message       string `json:"message,omitempty"`
	InterestLevel string `json:"interest_level,omitempty"` // e.g. EXPLORATORY, SERIOUS
	SpecificRole  string `json:"specific_role,omitempty"`
	Timeline      string `json:"timeline,omitempty"`
	BudgetRange   string `json:"budget_range,omitempty"`

	CreatedBy   int32   `json:"created_by"`
	RespondedBy *int32  `json:"responded_by,omitempty"`
	RespondedAt *string `json:"responded_at,omitempty"`
	CreatedOn   string  `json:"created_on"`
}

type EOIDirection string

const (
	EOIDirectionSent     EOIDirection = "SENT"
	EOIDirectionReceived EOIDirection = "RECEIVED"
)
