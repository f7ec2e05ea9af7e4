package roles

import (
	"context"

	"beexpress/internal/domain"
)

type roleRepository interface {
	Insert(ctx context.Context, a *domain.RoleAssignment) (bool, error)
	Get(ctx context.Context, userID string) (*domain.RoleAssignment, error)
}
