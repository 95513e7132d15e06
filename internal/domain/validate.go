package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	NameMinLen = 2
	NameMaxLen = 100
)

// NormalizeRole upper-cases the token and checks membership in the closed
// role set.
func NormalizeRole(role string) (string, error) {
	r := strings.ToUpper(strings.TrimSpace(role))
	switch r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
}

// NormalizeEmail lower-cases the address so uniqueness and lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate enforces the entity rule table: name length, email syntax, role
// membership. Pure check; it assumes Role and Email were already normalized.
func (u *User) Validate() error {
	name := strings.TrimSpace(u.Name)
	if n := utf8.RuneCountInString(name); name == "" || n < NameMinLen || n > NameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrInvalidName, NameMinLen, NameMaxLen)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidEmail)
	}
	addr, err := mail.ParseAddress(u.Email)
	if err != nil || addr.Address != u.Email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, u.Email)
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
	return nil
}
