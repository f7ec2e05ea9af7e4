package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"beexpress/internal/apperr"
	"beexpress/internal/domain"
	"beexpress/internal/service/users"
)

type stubRegistry struct {
	calls []registered
	err   error
}

type registered struct {
	userID string
	role   domain.Role
	phone  string
}

func (s *stubRegistry) Register(_ context.Context, userID string, role domain.Role, phone string) error {
	s.calls = append(s.calls, registered{userID: userID, role: role, phone: phone})
	return s.err
}

func TestProcessor_Handle_UserCreated(t *testing.T) {
	t.Parallel()

	reg := &stubRegistry{}
	p := users.NewProcessor(reg)

	err := p.Handle(context.Background(), users.Event{
		Type:        "user.created",
		UserID:      "user_1",
		Role:        "driver",
		PhoneNumber: "+79990001122",
	})
	require.NoError(t, err)
	require.Len(t, reg.calls, 1)
	require.Equal(t, "user_1", reg.calls[0].userID)
	require.Equal(t, domain.RoleDriver, reg.calls[0].role)
	require.Equal(t, "+79990001122", reg.calls[0].phone)
}

func TestProcessor_Handle_UnknownTypeIgnored(t *testing.T) {
	t.Parallel()

	reg := &stubRegistry{}
	p := users.NewProcessor(reg)

	for _, typ := range []string{"user.updated", "user.deleted", "billing.charged", ""} {
		err := p.Handle(context.Background(), users.Event{Type: typ, UserID: "user_1"})
		require.NoError(t, err)
	}
	require.Empty(t, reg.calls)
}

func TestProcessor_Handle_InvalidRolePropagates(t *testing.T) {
	t.Parallel()

	reg := &stubRegistry{err: apperr.ErrInvalid}
	p := users.NewProcessor(reg)

	err := p.Handle(context.Background(), users.Event{Type: "user.created", UserID: "user_1", Role: "admin"})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}
