package orders

import (
	"context"

	"beexpress/internal/domain"
	"beexpress/internal/ports/ordertx"
)

type orderRepository interface {
	ordertx.Runner
	Insert(ctx context.Context, o *domain.Order) error
	GetByTrackingID(ctx context.Context, trackingID string) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListForDriver(ctx context.Context, driverID string) ([]domain.Order, error)
}

// roleDirectory abstracts the subset of the role registry needed by the
// lifecycle engine.
type roleDirectory interface {
	Role(ctx context.Context, userID string) (domain.Role, error)
}

type counter interface {
	Inc()
}
