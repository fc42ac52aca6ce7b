package domain

// Team is an intact professional unit that applies to opportunities as a
// whole. Consumed read-only by this service except through projections.
type Team struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Size        int32  `json:"size"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	CreatedOn   string `json:"created_on"`
}

type TeamMemberStatus string

const (
	TeamMemberStatusActive   TeamMemberStatus = "ACTIVE"
	TeamMemberStatusInactive TeamMemberStatus = "INACTIVE"
)

// TeamMember links a user to a team. Leads and admins may act on behalf of
// the team (create or withdraw applications, send EOIs).
type TeamMember struct {
	TeamID   int32            `json:"team_id"`
	UserID   int32            `json:"user_id"`
	Status   TeamMemberStatus `json:"status"`
	IsLead   bool             `json:"is_lead"`
	IsAdmin  bool             `json:"is_admin"`
	Title    string           `json:"title"`
	JoinedOn string           `json:"joined_on"`
}

// CanRepresentTeam reports whether the member holds team-level authority.
func (m *TeamMember) CanRepresentTeam() bool {
	return m.Status == TeamMemberStatusActive && (m.IsLead || m.IsAdmin)
}
