package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-user-admin/internal/core/cache"
	"go-user-admin/internal/domain"
)

const analyticsCacheKey = "users:analytics"

const dateLayout = "2006-01-02"

// Stats is the aggregate view over the whole user collection.
type Stats struct {
	Total         int            `json:"totalUsers"`
	Active        int            `json:"activeUsers"`
	ActivePercent float64        `json:"activePercentage"`
	ByRole        map[string]int `json:"roleDistribution"`
	ByDepartment  map[string]int `json:"departmentDistribution"`
}

// Aggregate computes counts, the active percentage and the role/department
// distributions. Records with an empty department are excluded from the
// department distribution. An empty collection is a precondition violation,
// never a division by zero.
func Aggregate(users []domain.User) (*Stats, error) {
	total := len(users)
	if total == 0 {
		return nil, domain.ErrNoData
	}

	st := &Stats{
		Total:        total,
		ByRole:       make(map[string]int),
		ByDepartment: make(map[string]int),
	}
	for _, u := range users {
		if u.Active {
			st.Active++
		}
		if u.Role != "" {
			st.ByRole[u.Role]++
		}
		if u.Department != "" {
			st.ByDepartment[u.Department]++
		}
	}
	st.ActivePercent = float64(st.Active) / float64(total) * 100
	return st, nil
}

// validateDateRange checks the optional start/end tokens. The tokens gate
// the request only; filtering by date is not part of the aggregation.
func validateDateRange(startDate, endDate string) error {
	var start, end time.Time
	var err error
	if startDate != "" {
		if start, err = time.Parse(dateLayout, startDate); err != nil {
			return fmt.Errorf("%w: bad start date %q", domain.ErrInvalidDateRange, startDate)
		}
	}
	if endDate != "" {
		if end, err = time.Parse(dateLayout, endDate); err != nil {
			return fmt.Errorf("%w: bad end date %q", domain.ErrInvalidDateRange, endDate)
		}
	}
	if startDate != "" && endDate != "" && start.After(end) {
		return fmt.Errorf("%w: start date after end date", domain.ErrInvalidDateRange)
	}
	return nil
}

// GetAnalytics validates the date tokens and aggregates, going through the
// redis read-through cache when one is configured.
func (s *UserService) GetAnalytics(ctx context.Context, startDate, endDate string) (*Stats, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	load := func(ctx context.Context) (*Stats, error) {
		users, err := s.repo.FindAll(ctx)
		if err != nil {
			s.log.Error("analytics: fetch users", zap.Error(err))
			return nil, err
		}
		return Aggregate(users)
	}

	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, analyticsCacheKey, s.cacheTTL, load)
}
