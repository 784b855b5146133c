package domain

import "time"

// Role separates the three account classes.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// ClientType distinguishes individual clients from companies.
type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

// ContactMethod is the client's preferred channel for agency outreach.
type ContactMethod string

const (
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodPhone    ContactMethod = "phone"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
)

// ContactFrequency is how often a client wants to hear from the agency.
type ContactFrequency string

const (
	ContactFrequencyDaily    ContactFrequency = "daily"
	ContactFrequencyWeekly   ContactFrequency = "weekly"
	ContactFrequencyAsNeeded ContactFrequency = "as-needed"
)

// User is the profile record behind every authenticated account.
// Staff fields are set only for role=staff, client fields only for role=client.
type User struct {
	ID                     string
	Email                  string
	Name                   string
	PasswordHash           string
	Role                   Role
	StaffRole              *StaffRole
	StaffRoleLabel         *string
	ClientType             *ClientType
	CompanyName            *string
	Phone                  *string
	TimeZone               *string
	PreferredContactMethod *ContactMethod
	CommunicationFrequency *ContactFrequency
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsTeamMember reports whether the user belongs to the agency side (staff or admin).
func (u *User) IsTeamMember() bool {
	return u.Role == RoleAdmin || u.Role == RoleStaff
}

// ValidRole reports whether the value is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}
