package domain

import (
	"errors"
	"strings"
)

// MinPasswordLength is the client-side minimum before a registration
// or password change is sent.
const MinPasswordLength = 8

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// ProfileUpdate changes the account email and/or password. The current
// password is always required.
type ProfileUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	Email           string `json:"email,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
}

var (
	ErrEmptyEmail       = errors.New("email must not be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if c.Password == "" {
		return ErrPasswordTooShort
	}
	return nil
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmptyEmail
	}
	if len(r.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (p ProfileUpdate) Validate() error {
	if p.CurrentPassword == "" {
		return errors.New("current password is required")
	}
	if p.NewPassword != "" && len(p.NewPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
