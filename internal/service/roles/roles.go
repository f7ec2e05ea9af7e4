package roles

import (
	"context"
	"strings"
	"time"

	"beexpress/internal/apperr"
	"beexpress/internal/domain"
	"beexpress/internal/logx"
)

// Service is the role registry: it resolves a caller identity to its
// customer/driver role and records first-time registrations.
type Service struct {
	repo             roleRepository
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a roles Service.
func NewService(r roleRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Register records a role for an identity. First write wins: if the
// identity is already registered the call is a silent no-op, not an error.
func (s *Service) Register(ctx context.Context, userID string, role domain.Role, phone string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperr.ErrInvalid
	}
	if !role.Valid() {
		return apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	created, err := s.repo.Insert(ctx, &domain.RoleAssignment{
		UserID:      userID,
		Role:        role,
		PhoneNumber: strings.TrimSpace(phone),
	})
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("role registered",
			logx.String("event", "role_registered"),
			logx.String("user_id", userID),
			logx.String("role", string(role)),
		)
	}
	return nil
}

// Get retrieves the role assignment for an identity.
func (s *Service) Get(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	a, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return a, nil
}

// Role resolves an identity to its role.
func (s *Service) Role(ctx context.Context, userID string) (domain.Role, error) {
	a, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return a.Role, nil
}
