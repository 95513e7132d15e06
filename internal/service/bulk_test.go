package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-admin/internal/domain"
	"go-user-admin/internal/service"
)

func TestBulkCreate_BatchTooLarge(t *testing.T) {
	svc, _ := newTestService(t, service.Options{})
	ctx := context.Background()

	items := make([]domain.User, service.MaxBatchSize+1)
	for i := range items {
		items[i] = domain.User{
			Name: "Bulk User", Email: fmt.Sprintf("bulk%d@example.com", i), Role: "USER",
		}
	}
	_, err := svc.BulkCreateUsers(ctx, items)
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)

	n, err := svc.GetUserCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "rejected batch persists nothing")
}

func TestBulkCreate_AtCap(t *testing.T) {
	svc, _ := newTestService(t, service.Options{})
	ctx := context.Background()

	items := make([]domain.User, service.MaxBatchSize)
	for i := range items {
		items[i] = domain.User{
			Name: "Bulk User", Email: fmt.Sprintf("bulk%d@example.com", i), Role: "USER",
		}
	}
	res, err := svc.BulkCreateUsers(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, service.MaxBatchSize, res.Succeeded)
	assert.Zero(t, res.Failed)
}

func TestBulkCreate_PartialFailure(t *testing.T) {
	svc, _ := newTestService(t, service.Options{})
	ctx := context.Background()
	mustCreate(t, svc, "Alice Johnson", "alice@example.com", "USER")

	items := []domain.User{
		{Name: "Bob Smith", Email: "bob@example.com", Role: "USER"},
		{Name: "Dup Alice", Email: "alice@example.com", Role: "USER"},  // duplicate
		{Name: "Bad Role", Email: "role@example.com", Role: "WIZARD"}, // invalid role
		{Name: "X", Email: "short@example.com", Role: "USER"},         // name too short
		{Name: "Carol Jones", Email: "carol@example.com", Role: "ADMIN"},
	}
	res, err := svc.BulkCreateUsers(ctx, items)
	require.NoError(t, err, "per-item failures never abort the batch")

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 3, res.Failed)
	require.Len(t, res.Created, 2)
	assert.Equal(t, "bob@example.com", res.Created[0].Email)
	assert.Equal(t, "carol@example.com", res.Created[1].Email)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "item 1:")

	n, err := svc.GetUserCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n, "pre-existing user plus the two valid items")
}

func TestBulkCreate_Empty(t *testing.T) {
	svc, _ := newTestService(t, service.Options{})
	res, err := svc.BulkCreateUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Succeeded)
	assert.Zero(t, res.Failed)
	assert.Empty(t, res.Created)
}
