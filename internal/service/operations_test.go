package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-admin/internal/domain"
	"go-user-admin/internal/service"
)

func TestParseOperation(t *testing.T) {
	for token, want := range map[string]service.Operation{
		"promote_to_admin": service.OpPromoteToAdmin,
		"demote_to_user":   service.OpDemoteToUser,
		"reset_account":    service.OpResetAccount,
	} {
		op, err := service.ParseOperation(token)
		require.NoError(t, err)
		assert.Equal(t, want, op)
	}

	_, err := service.ParseOperation("delete_everything")
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
}

func TestApplyOperation_Promote(t *testing.T) {
	svc, _ := newTestService(t, service.Options{FailureRate: 0})
	ctx := context.Background()
	created := mustCreate(t, svc, "Alice Johnson", "alice@example.com", "USER")

	u, err := svc.ApplyOperation(ctx, created.ID, "promote_to_admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.UpdatedAt.After(created.UpdatedAt) || u.UpdatedAt.Equal(created.UpdatedAt))

	stored, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestApplyOperation_PromoteIdempotent(t *testing.T) {
	svc, _ := newTestService(t, service.Options{FailureRate: 0})
	ctx := context.Background()
	created := mustCreate(t, svc, "Alice Johnson", "alice@example.com", "ADMIN")

	u, err := svc.ApplyOperation(ctx, created.ID, "promote_to_admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.UpdatedAt.Equal(created.UpdatedAt), "no-op leaves updatedAt untouched")
}

func TestApplyOperation_Demote(t *testing.T) {
	svc, _ := newTestService(t, service.Options{FailureRate: 0})
	ctx := context.Background()
	admin := mustCreate(t, svc, "Alice Johnson", "alice@example.com", "ADMIN")
	user := mustCreate(t, svc, "Bob Smith", "bob@example.com", "USER")

	u, err := svc.ApplyOperation(ctx, admin.ID, "demote_to_user")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)

	u, err = svc.ApplyOperation(ctx, user.ID, "demote_to_user")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.True(t, u.UpdatedAt.Equal(user.UpdatedAt), "demote on a USER is a no-op")
}

func TestApplyOperation_ResetAccount(t *testing.T) {
	svc, _ := newTestService(t, service.Options{FailureRate: 0})
	ctx := context.Background()
	created, err := svc.CreateUser(ctx, &domain.User{
		Name: "Alice Johnson", Email: "alice@example.com", Role: "USER",
		Phone: "555-0101", Department: "Engineering",
	})
	require.NoError(t, err)

	u, err := svc.ApplyOperation(ctx, created.ID, "reset_account")
	require.NoError(t, err)
	assert.Empty(t, u.Phone)
	assert.Empty(t, u.Department)
	assert.True(t, u.UpdatedAt.After(created.UpdatedAt) || u.UpdatedAt.Equal(created.UpdatedAt))

	// reset is unconditional; a second pass still succeeds
	u, err = svc.ApplyOperation(ctx, created.ID, "reset_account")
	require.NoError(t, err)
	assert.Empty(t, u.Phone)
}

func TestApplyOperation_Unknown(t *testing.T) {
	svc, _ := newTestService(t, service.Options{FailureRate: 0})
	ctx := context.Background()
	created := mustCreate(t, svc, "Alice Johnson", "alice@example.com", "USER")

	_, err := svc.ApplyOperation(ctx, created.ID, "explode")
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
}

func TestApplyOperation_NotFound(t *testing.T) {
	svc, _ := newTestService(t, service.Options{FailureRate: 0})
	_, err := svc.ApplyOperation(context.Background(), "missing", "promote_to_admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyOperation_SimulatedFailureDiscardsMutation(t *testing.T) {
	svc, _ := newTestService(t, service.Options{
		FailureRate: 1,
		Sampler:     func() float64 { return 0.5 }, // always below rate 1
	})
	ctx := context.Background()
	created := mustCreate(t, svc, "Alice Johnson", "alice@example.com", "USER")

	_, err := svc.ApplyOperation(ctx, created.ID, "promote_to_admin")
	assert.ErrorIs(t, err, domain.ErrSimulatedFailure)

	stored, err := svc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role, "mutated state must not be saved")
	assert.True(t, stored.UpdatedAt.Equal(created.UpdatedAt))
}

func TestApplyOperation_SamplerControlsBothBranches(t *testing.T) {
	ctx := context.Background()

	// sampler at the rate boundary: sample >= rate means no injection
	svc, _ := newTestService(t, service.Options{
		FailureRate: 0.10,
		Sampler:     func() float64 { return 0.10 },
	})
	created := mustCreate(t, svc, "Alice Johnson", "alice@example.com", "USER")
	_, err := svc.ApplyOperation(ctx, created.ID, "promote_to_admin")
	assert.NoError(t, err)

	svc2, _ := newTestService(t, service.Options{
		FailureRate: 0.10,
		Sampler:     func() float64 { return 0.09 },
	})
	created2 := mustCreate(t, svc2, "Bob Smith", "bob@example.com", "USER")
	_, err = svc2.ApplyOperation(ctx, created2.ID, "promote_to_admin")
	assert.ErrorIs(t, err, domain.ErrSimulatedFailure)
}
