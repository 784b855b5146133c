package dto

import (
	"time"

	"github.com/offloadr/connect-api/internal/domain"
)

// UserResponse is the public shape of a profile.
type UserResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	StaffRole      string `json:"staff_role,omitempty"`
	StaffRoleLabel string `json:"staff_role_label,omitempty"`
	ClientType     string `json:"client_type,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	TimeZone       string `json:"time_zone,omitempty"`

	PreferredContactMethod string    `json:"preferred_contact_method,omitempty"`
	CommunicationFrequency string    `json:"communication_frequency,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user, dropping the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if user.StaffRole != nil {
		resp.StaffRole = string(*user.StaffRole)
	}
	if user.StaffRoleLabel != nil {
		resp.StaffRoleLabel = *user.StaffRoleLabel
	}
	if user.ClientType != nil {
		resp.ClientType = string(*user.ClientType)
	}
	if user.CompanyName != nil {
		resp.CompanyName = *user.CompanyName
	}
	if user.Phone != nil {
		resp.Phone = *user.Phone
	}
	if user.TimeZone != nil {
		resp.TimeZone = *user.TimeZone
	}
	if user.PreferredContactMethod != nil {
		resp.PreferredContactMethod = string(*user.PreferredContactMethod)
	}
	if user.CommunicationFrequency != nil {
		resp.CommunicationFrequency = string(*user.CommunicationFrequency)
	}
	return resp
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// ProfileUpdateRequest payload for profile self-edit. Role is not accepted.
type ProfileUpdateRequest struct {
	Name                   *string `json:"name"`
	Phone                  *string `json:"phone"`
	TimeZone               *string `json:"time_zone"`
	CompanyName            *string `json:"company_name"`
	ClientType             *string `json:"client_type"`
	PreferredContactMethod *string `json:"preferred_contact_method"`
	CommunicationFrequency *string `json:"communication_frequency"`
	StaffRole              *string `json:"staff_role"`
}

// RoleChangeRequest payload for the admin role-change endpoint.
type RoleChangeRequest struct {
	Role string `json:"role"`
}
