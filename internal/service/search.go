package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-user-admin/internal/domain"
)

// Criteria holds the optional search predicates. Zero-valued fields are
// pass-throughs; a supplied criterion never matches an empty candidate
// field, and all supplied criteria must match (AND).
type Criteria struct {
	Name       string
	Email      string
	Role       string
	Department string
	Active     *bool
}

// Filter returns the subset of users matching every supplied criterion,
// original order preserved. Name/email/department match by case-insensitive
// containment, role by case-insensitive equality, active by exact equality.
func Filter(users []domain.User, c Criteria) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if c.matches(&u) {
			out = append(out, u)
		}
	}
	return out
}

func (c Criteria) matches(u *domain.User) bool {
	if !containsFold(u.Name, c.Name) {
		return false
	}
	if !containsFold(u.Email, c.Email) {
		return false
	}
	if c.Role != "" && !strings.EqualFold(u.Role, c.Role) {
		return false
	}
	if !containsFold(u.Department, c.Department) {
		return false
	}
	if c.Active != nil && u.Active != *c.Active {
		return false
	}
	return true
}

func containsFold(field, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}

// SearchUsers filters the full collection and slices out the requested page.
func (s *UserService) SearchUsers(ctx context.Context, c Criteria, page, size int) (*Page, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("search: fetch users", zap.Error(err))
		return nil, err
	}
	return Paginate(Filter(users, c), page, size)
}
