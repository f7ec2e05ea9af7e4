package ordertx

import (
	"context"
	"time"

	"beexpress/internal/domain"
)

// Repository is the per-transaction view of the orders table. Every Set*
// method applies a guarded conditional update and reports whether a row
// actually changed, so a failed guard leaves the record untouched.
type Repository interface {
	GetForUpdate(ctx context.Context, trackingID string) (*domain.Order, error)
	SetAssigned(ctx context.Context, trackingID, driverID string) (bool, error)
	SetPickedUp(ctx context.Context, trackingID string, at time.Time) (bool, error)
	SetDelivered(ctx context.Context, trackingID string, at time.Time) (bool, error)
	Delete(ctx context.Context, trackingID string) (bool, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
