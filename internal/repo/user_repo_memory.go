package repo

import (
	"context"
	"strings"
	"sync"

	"go-user-admin/internal/domain"
	"go-user-admin/pkg/utils"
)

// MemoryRepo is an in-memory UserRepository for demos and tests. It keeps
// insertion order and enforces the same email uniqueness the gorm repo gets
// from its unique index.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]domain.User)}
}

func (r *MemoryRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		u := r.users[id]
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) FindByRole(ctx context.Context, role string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.User
	for _, id := range r.order {
		if u := r.users[id]; u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if strings.EqualFold(r.users[id].Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	r.users[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *MemoryRepo) Update(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, id := range r.order {
		if id != u.ID && strings.EqualFold(r.users[id].Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}
