package users

import (
	"context"

	"beexpress/internal/domain"
)

// RegistryPort abstracts the subset of the role registry needed by the
// users Processor when handling identity-provider events
type RegistryPort interface {
	Register(ctx context.Context, userID string, role domain.Role, phone string) error
}
