package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-user-admin/internal/domain"
)

// MaxBatchSize caps a single bulk-create request. The cap is checked before
// any item is processed, so an oversized batch persists nothing.
const MaxBatchSize = 1000

// BulkResult reports a partially applied batch: the users that made it in
// plus per-item failure bookkeeping.
type BulkResult struct {
	Created   []domain.User `json:"created"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Errors    []string      `json:"errors"`
}

// BulkCreateUsers runs the validation gate and save for each item
// independently. A per-item failure is tallied, never aborting the batch;
// only the size cap rejects the batch outright.
func (s *UserService) BulkCreateUsers(ctx context.Context, items []domain.User) (*BulkResult, error) {
	if len(items) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d items exceeds the cap of %d", domain.ErrBatchTooLarge, len(items), MaxBatchSize)
	}

	res := &BulkResult{Created: []domain.User{}, Errors: []string{}}
	for i := range items {
		u, err := s.CreateUser(ctx, &items[i])
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		res.Succeeded++
		res.Created = append(res.Created, *u)
	}
	s.log.Info("bulk create finished",
		zap.Int("succeeded", res.Succeeded), zap.Int("failed", res.Failed))
	return res, nil
}
