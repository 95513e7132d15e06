package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-user-admin/internal/domain"
)

// Operation is the closed set of state transitions ApplyOperation accepts.
// Tokens are parsed at the boundary; nothing downstream dispatches on raw
// strings.
type Operation int

const (
	OpPromoteToAdmin Operation = iota
	OpDemoteToUser
	OpResetAccount
)

func ParseOperation(token string) (Operation, error) {
	switch token {
	case "promote_to_admin":
		return OpPromoteToAdmin, nil
	case "demote_to_user":
		return OpDemoteToUser, nil
	case "reset_account":
		return OpResetAccount, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, token)
	}
}

// ApplyOperation runs one named transition against a user. After the
// transition a transient failure is injected with the configured
// probability; on injection the mutated state is discarded and nothing is
// saved, so the caller can retry. Idempotent no-ops (promote on an admin,
// demote on a user) skip the save and leave updatedAt untouched.
func (s *UserService) ApplyOperation(ctx context.Context, id, token string) (*domain.User, error) {
	op, err := ParseOperation(token)
	if err != nil {
		return nil, err
	}
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mutated := false
	switch op {
	case OpPromoteToAdmin:
		if !u.IsAdmin() {
			u.Role = domain.RoleAdmin
			mutated = true
		}
	case OpDemoteToUser:
		if u.IsAdmin() {
			u.Role = domain.RoleUser
			mutated = true
		}
	case OpResetAccount:
		u.Phone = ""
		u.Department = ""
		mutated = true
	}
	if mutated {
		u.UpdatedAt = time.Now()
		u.UpdatedBy = actorSystem
	}

	if s.sample() < s.failRate {
		s.log.Warn("simulated transient failure",
			zap.String("id", id), zap.String("operation", token))
		return nil, domain.ErrSimulatedFailure
	}

	if mutated {
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, err
		}
		s.invalidateAnalytics(ctx)
	}
	s.log.Info("operation applied", zap.String("id", id), zap.String("operation", token))
	return u, nil
}
