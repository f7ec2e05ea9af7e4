package roles_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"beexpress/internal/apperr"
	"beexpress/internal/domain"
	"beexpress/internal/service/roles"
	testlog "beexpress/internal/testutil"
)

type stubRoleRepo struct {
	insertFn func(context.Context, *domain.RoleAssignment) (bool, error)
	getFn    func(context.Context, string) (*domain.RoleAssignment, error)
}

func (s *stubRoleRepo) Insert(ctx context.Context, a *domain.RoleAssignment) (bool, error) {
	if s.insertFn == nil {
		return false, nil
	}
	return s.insertFn(ctx, a)
}

func (s *stubRoleRepo) Get(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, userID)
}

func TestService_Register_FirstWriteWins(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var got *domain.RoleAssignment
	repo := &stubRoleRepo{
		insertFn: func(_ context.Context, a *domain.RoleAssignment) (bool, error) {
			got = a
			return true, nil
		},
	}
	svc := roles.NewService(repo, 3*time.Second, rec.Logger())

	err := svc.Register(context.Background(), " user_1 ", domain.RoleDriver, " +79990001122 ")
	require.NoError(t, err)
	require.Equal(t, "user_1", got.UserID)
	require.Equal(t, domain.RoleDriver, got.Role)
	require.Equal(t, "+79990001122", got.PhoneNumber)
	require.True(t, rec.HasMessage("role registered"))
}

func TestService_Register_DuplicateIsSilentNoop(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	repo := &stubRoleRepo{
		insertFn: func(context.Context, *domain.RoleAssignment) (bool, error) {
			return false, nil
		},
	}
	svc := roles.NewService(repo, 3*time.Second, rec.Logger())

	err := svc.Register(context.Background(), "user_1", domain.RoleCustomer, "")
	require.NoError(t, err)
	require.False(t, rec.HasMessage("role registered"))
}

func TestService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := roles.NewService(&stubRoleRepo{}, 3*time.Second, testlog.New().Logger())

	err := svc.Register(context.Background(), "  ", domain.RoleCustomer, "")
	require.ErrorIs(t, err, apperr.ErrInvalid)

	err = svc.Register(context.Background(), "user_1", domain.Role("admin"), "")
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	want := &domain.RoleAssignment{UserID: "user_1", Role: domain.RoleCustomer}
	repo := &stubRoleRepo{
		getFn: func(_ context.Context, userID string) (*domain.RoleAssignment, error) {
			if userID == "user_1" {
				return want, nil
			}
			return nil, nil
		},
	}
	svc := roles.NewService(repo, 3*time.Second, testlog.New().Logger())

	got, err := svc.Get(context.Background(), "user_1")
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Role(t *testing.T) {
	t.Parallel()

	repo := &stubRoleRepo{
		getFn: func(context.Context, string) (*domain.RoleAssignment, error) {
			return &domain.RoleAssignment{UserID: "user_1", Role: domain.RoleDriver}, nil
		},
	}
	svc := roles.NewService(repo, 3*time.Second, testlog.New().Logger())

	role, err := svc.Role(context.Background(), "user_1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleDriver, role)
}
