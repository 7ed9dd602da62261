package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles. Guards and navigation switch
// exhaustively over these values; an unknown role is treated as unauthorized.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleAdmin       Role = "ADMIN"
	RoleSender      Role = "SENDER"
	RoleReceiver    Role = "RECEIVER"
	RoleDeliveryMan Role = "DELIVERY_MAN"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleSender, RoleReceiver, RoleDeliveryMan}
}

// ParseRole maps a wire string to a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsActive is the account activation state.
type IsActive string

const (
	Active   IsActive = "ACTIVE"
	Inactive IsActive = "INACTIVE"
	Blocked  IsActive = "BLOCKED"
)

// User is the backend-owned identity record.
type User struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	DefaultAddress string    `json:"defaultAddress,omitempty"`
	Picture        string    `json:"picture,omitempty"`
	Role           Role      `json:"role"`
	IsVerified     bool      `json:"isVerified"`
	IsActive       IsActive  `json:"isActive"`
	IsDeleted      bool      `json:"isDeleted,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

// LoginResult is the payload of POST /auth/login. Tokens are persisted by the
// session store; callers should not hold on to them.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// RegisterInput creates a sender/receiver account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"defaultAddress,omitempty"`
}

// Validate applies the same form-level checks the registration screen does.
// Real credential policy lives on the backend.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}

// StaffInput creates an admin or delivery-personnel account (admin action).
type StaffInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

func (in StaffInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}

// UserPatch carries the fields an admin may change on PATCH /user/:id.
// Nil pointers are omitted from the request body.
type UserPatch struct {
	Name           *string `json:"name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DefaultAddress *string `json:"defaultAddress,omitempty"`
}

func validateEmail(email string) error {
	if len(email) < 5 || len(email) > 100 {
		return fmt.Errorf("email must be between 5 and 100 characters long")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("invalid email address format")
	}
	return nil
}
