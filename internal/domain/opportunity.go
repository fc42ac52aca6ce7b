package domain

type OpportunityStatus string

const (
	OpportunityStatusActive OpportunityStatus = "ACTIVE"
	OpportunityStatusPaused OpportunityStatus = "PAUSED"
	OpportunityStatusFilled OpportunityStatus = "FILLED"
	OpportunityStatusClosed OpportunityStatus = "CLOSED"
)

// Opportunity is a company-posted engagement seeking a team. This service
// only mutates two fields: applications_count (atomic counter) and status
// (flipped to FILLED when an application is accepted).
type Opportunity struct {
	ID                 int32             `json:"id"`
	CompanyID          int32             `json:"company_id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Status             OpportunityStatus `json:"status"`
	TeamSizeMin        int32             `json:"team_size_min"`
	TeamSizeMax        int32             `json:"team_size_max"`
	CompRangeLowCents  int64             `json:"comp_range_low_cents"`
	CompRangeHighCents int64             `json:"comp_range_high_cents"`
	ApplicationsCount  int32             `json:"applications_count"`
	CreatedOn          string            `json:"created_on"`
}
