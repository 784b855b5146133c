package dto

import "time"

// RegisterRequest payload for signup. Client profile fields apply when role
// is client (the default); staffRole applies when role is staff.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`

	ClientType             string `json:"client_type,omitempty"`
	CompanyName            string `json:"company_name,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	TimeZone               string `json:"time_zone,omitempty"`
	PreferredContactMethod string `json:"preferred_contact_method,omitempty"`
	CommunicationFrequency string `json:"communication_frequency,omitempty"`

	StaffRole string `json:"staff_role,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordChangeRequest payload for authenticated password change.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload for requesting a reset token.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming a reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
