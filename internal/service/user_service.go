package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"go-user-admin/internal/core/cache"
	"go-user-admin/internal/domain"
)

// actorSystem is the attribution written to createdBy/updatedBy; there is
// no authenticated principal in this service.
const actorSystem = "system"

// Sampler yields a value in [0,1) compared against the configured failure
// rate. Injectable so tests can force both branches.
type Sampler func() float64

type Options struct {
	Cache       *cache.Cache // optional read-through cache for analytics
	CacheTTL    time.Duration
	FailureRate float64 // probability of a simulated transient failure per operation
	Sampler     Sampler
}

// UserService is the domain service: validation gate, CRUD, search,
// pagination, analytics, export, operation dispatch and bulk creation.
// All work besides repository calls is pure and in-memory.
type UserService struct {
	repo     domain.UserRepository
	log      *zap.Logger
	cache    *cache.Cache
	cacheTTL time.Duration
	failRate float64
	sample   Sampler
}

func NewUserService(repo domain.UserRepository, l *zap.Logger, opt Options) *UserService {
	if opt.Sampler == nil {
		opt.Sampler = rand.Float64
	}
	if opt.CacheTTL <= 0 {
		opt.CacheTTL = 30 * time.Second
	}
	return &UserService{
		repo:     repo,
		log:      l,
		cache:    opt.Cache,
		cacheTTL: opt.CacheTTL,
		failRate: opt.FailureRate,
		sample:   opt.Sampler,
	}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("fetch all users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("fetch user by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		s.log.Error("fetch user by email", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role string) ([]domain.User, error) {
	r, err := domain.NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByRole(ctx, r)
}

func (s *UserService) GetUserCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CreateUser runs the validation gate and persists. The FindByEmail
// pre-check is a fast path only; the store's unique constraint is the
// authority, so a concurrent same-email create loses there with
// ErrDuplicateEmail rather than slipping through.
func (s *UserService) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	role, err := domain.NormalizeRole(u.Role)
	if err != nil {
		return nil, err
	}
	u.Role = role
	u.Email = domain.NormalizeEmail(u.Email)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, u.Email); err != nil {
		s.log.Error("email uniqueness pre-check", zap.Error(err))
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, u.Email)
	}

	now := time.Now()
	u.Active = true
	u.CreatedAt = now
	u.UpdatedAt = now
	u.CreatedBy = actorSystem
	u.UpdatedBy = actorSystem

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	s.log.Info("user created", zap.String("id", u.ID), zap.String("email", u.Email))
	return u, nil
}

// UpdateUser replaces name/email/role/phone/department on an existing record.
func (s *UserService) UpdateUser(ctx context.Context, id string, in *domain.User) (*domain.User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := domain.NormalizeRole(in.Role)
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(in.Email)
	if email != u.Email {
		if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
		}
	}

	u.Name = in.Name
	u.Email = email
	u.Role = role
	u.Phone = in.Phone
	u.Department = in.Department
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now()
	u.UpdatedBy = actorSystem

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	s.log.Info("user updated", zap.String("id", u.ID))
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	s.log.Info("user deleted", zap.String("id", id))
	return nil
}

func (s *UserService) ActivateUser(ctx context.Context, id string) (*domain.User, error) {
	return s.setActive(ctx, id, true)
}

func (s *UserService) DeactivateUser(ctx context.Context, id string) (*domain.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Active = active
	u.UpdatedAt = time.Now()
	u.UpdatedBy = actorSystem
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return u, nil
}

func (s *UserService) invalidateAnalytics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, analyticsCacheKey); err != nil {
		s.log.Warn("analytics cache invalidate", zap.Error(err))
	}
}
