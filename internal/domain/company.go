package domain

type Company struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Location  string `json:"location"`
	CreatedOn string `json:"created_on"`
}

type CompanyRole string

const (
	CompanyRoleOwner  CompanyRole = "OWNER"
	CompanyRoleAdmin  CompanyRole = "ADMIN"
	CompanyRoleMember CompanyRole = "MEMBER"
)

// CompanyMember links a user to a hiring company. Only owners and admins
// may authorize offers.
type CompanyMember struct {
	CompanyID int32       `json:"company_id"`
	UserID    int32       `json:"user_id"`
	Role      CompanyRole `json:"role"`
	JoinedOn  string      `json:"joined_on"`
}

// CanAuthorizeOffer reports whether the member holds offer-level authority.
func (m *CompanyMember) CanAuthorizeOffer() bool {
	return m.Role == CompanyRoleOwner || m.Role == CompanyRoleAdmin
}
