package handlers

import (
	"context"

	"beexpress/internal/domain"
	"beexpress/internal/gateway/geo"
	"beexpress/internal/service/orders"
	"beexpress/internal/service/roles"
)

type ordersUsecase interface {
	Create(ctx context.Context, caller string, in orders.CreateInput) (*domain.Order, error)
	ListFor(ctx context.Context, caller string) ([]domain.Order, error)
	Get(ctx context.Context, caller, trackingID string) (*domain.Order, error)
	Accept(ctx context.Context, caller, trackingID string) (*domain.Order, error)
	MarkPickedUp(ctx context.Context, caller, trackingID string) (*domain.Order, error)
	ConfirmDelivery(ctx context.Context, caller, trackingID, pin string) (*domain.Order, error)
	Delete(ctx context.Context, caller, trackingID string) error
}

// NewOrdersUsecase wires an orders.Service into an ordersUsecase.
func NewOrdersUsecase(svc *orders.Service) ordersUsecase {
	return svc
}

type rolesUsecase interface {
	Register(ctx context.Context, userID string, role domain.Role, phone string) error
	Get(ctx context.Context, userID string) (*domain.RoleAssignment, error)
}

// NewRolesUsecase wires a roles.Service into a rolesUsecase.
func NewRolesUsecase(svc *roles.Service) rolesUsecase {
	return svc
}

type distancer interface {
	RouteDistanceKm(ctx context.Context, origin, dest domain.Coordinates) (float64, error)
}

// NewDistancer wires the retrying geo gateway into a distancer. A nil
// gateway (no API key configured) yields a nil distancer, which prices
// every order with the zero-distance fallback.
func NewDistancer(gw *geo.RetryingGateway) distancer {
	if gw == nil {
		return nil
	}
	return gw
}
