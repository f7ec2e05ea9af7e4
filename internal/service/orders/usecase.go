package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"beexpress/internal/apperr"
	"beexpress/internal/domain"
	"beexpress/internal/logx"
	"beexpress/internal/ports/ordertx"
)

// Service - the order lifecycle engine. It owns order creation, the
// pending → assigned → picked_up → delivered progression, single-driver
// assignment arbitration and PIN-gated delivery confirmation.
type Service struct {
	repo             orderRepository
	roles            roleDirectory
	operationTimeout time.Duration
	logger           logx.Logger
	acceptConflicts  counter
	now              func() time.Time
	newPin           func() (string, error)
}

// NewService - creates a new order lifecycle Service.
func NewService(r orderRepository, roles roleDirectory, timeout time.Duration, logger logx.Logger, acceptConflicts counter) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		roles:            roles,
		operationTimeout: timeout,
		logger:           logger,
		acceptConflicts:  acceptConflicts,
		now:              func() time.Time { return time.Now().UTC() },
		newPin:           domain.GeneratePin,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateInput carries the order creation payload. DeliveryFee and
// DistanceKm are computed by the caller before this call, so a slow or
// failing distance lookup never holds a lock on the order record.
type CreateInput struct {
	TrackingID            string
	Pickup                domain.Location
	Delivery              domain.Location
	ItemDescription       string
	Weight                *float64
	PreferredDeliveryTime *string
	SpecialInstructions   *string
	DeliveryFee           float64
	DistanceKm            float64
}

func validateCreate(in *CreateInput) error {
	if strings.TrimSpace(in.Pickup.Address) == "" || strings.TrimSpace(in.Delivery.Address) == "" {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(in.ItemDescription) == "" {
		return apperr.ErrInvalid
	}
	if in.DeliveryFee < 0 || in.DistanceKm < 0 {
		return apperr.ErrInvalid
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// Create places a new order in pending state with a freshly generated
// delivery PIN. Only customers may create orders; a duplicate tracking ID
// fails with apperr.ErrConflict.
func (s *Service) Create(ctx context.Context, caller string, in CreateInput) (*domain.Order, error) {
	if caller == "" {
		return nil, apperr.ErrUnauthorized
	}

	trackingID, ok := domain.NormalizeTrackingID(in.TrackingID)
	if !ok {
		return nil, apperr.ErrInvalid
	}
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	role, err := s.roles.Role(ctx, caller)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleCustomer {
		return nil, apperr.ErrForbidden
	}

	pin, err := s.newPin()
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		TrackingID:            trackingID,
		CustomerID:            caller,
		Pickup:                in.Pickup,
		Delivery:              in.Delivery,
		ItemDescription:       strings.TrimSpace(in.ItemDescription),
		Weight:                in.Weight,
		PreferredDeliveryTime: in.PreferredDeliveryTime,
		SpecialInstructions:   in.SpecialInstructions,
		DeliveryFee:           in.DeliveryFee,
		DistanceKm:            in.DistanceKm,
		Status:                domain.StatusPending,
		DeliveryPin:           pin,
		CreatedAt:             s.now(),
	}
	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		logx.String("event", "order_created"),
		logx.String("tracking_id", o.TrackingID),
		logx.Float64("distance_km", o.DistanceKm),
		logx.Float64("delivery_fee", o.DeliveryFee),
	)

	return o, nil
}

// ListFor returns the orders visible to the caller: customers see their
// own orders, drivers see every pending order plus those assigned to them.
func (s *Service) ListFor(ctx context.Context, caller string) ([]domain.Order, error) {
	if caller == "" {
		return nil, apperr.ErrUnauthorized
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	role, err := s.roles.Role(ctx, caller)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleDriver {
		return s.repo.ListForDriver(ctx, caller)
	}
	return s.repo.ListForCustomer(ctx, caller)
}

// Get returns a single order, applying the same visibility scoping as
// ListFor. An order outside the caller's scope reads as not found.
func (s *Service) Get(ctx context.Context, caller, rawTrackingID string) (*domain.Order, error) {
	if caller == "" {
		return nil, apperr.ErrUnauthorized
	}
	trackingID, ok := domain.NormalizeTrackingID(rawTrackingID)
	if !ok {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	role, err := s.roles.Role(ctx, caller)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}

	if role == domain.RoleDriver {
		if o.Status != domain.StatusPending && !o.AssignedTo(caller) {
			return nil, apperr.ErrNotFound
		}
		return o, nil
	}
	if o.CustomerID != caller {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// Accept assigns a pending order to the calling driver. The row is locked
// and the update re-checks the guard, so exactly one of any concurrent
// accepts wins; every loser observes the set driver and fails with
// apperr.ErrConflict.
func (s *Service) Accept(ctx context.Context, caller, rawTrackingID string) (*domain.Order, error) {
	if caller == "" {
		return nil, apperr.ErrUnauthorized
	}
	trackingID, ok := domain.NormalizeTrackingID(rawTrackingID)
	if !ok {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	role, err := s.roles.Role(ctx, caller)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleDriver {
		return nil, apperr.ErrForbidden
	}

	var result *domain.Order
	err = s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrNotFound
		}
		if o.Status != domain.StatusPending || o.DriverID != nil {
			return apperr.ErrConflict
		}

		ok, err := tx.SetAssigned(ctx, trackingID, caller)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrConflict
		}

		driverID := caller
		o.Status = domain.StatusAssigned
		o.DriverID = &driverID
		result = o
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) && s.acceptConflicts != nil {
			s.acceptConflicts.Inc()
		}
		return nil, err
	}

	s.logger.Info("order accepted",
		logx.String("event", "order_accepted"),
		logx.String("tracking_id", result.TrackingID),
		logx.String("driver_id", caller),
	)

	return result, nil
}

// MarkPickedUp moves an assigned order to picked_up. Only the assigned
// driver may call it.
func (s *Service) MarkPickedUp(ctx context.Context, caller, rawTrackingID string) (*domain.Order, error) {
	if caller == "" {
		return nil, apperr.ErrUnauthorized
	}
	trackingID, ok := domain.NormalizeTrackingID(rawTrackingID)
	if !ok {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Order
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrNotFound
		}
		// no driver means no ownership to violate, only a wrong state
		if o.DriverID == nil {
			return apperr.ErrInvalidState
		}
		if !o.AssignedTo(caller) {
			return apperr.ErrForbidden
		}
		if o.Status != domain.StatusAssigned {
			return apperr.ErrInvalidState
		}

		at := s.now()
		ok, err := tx.SetPickedUp(ctx, trackingID, at)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidState
		}

		o.Status = domain.StatusPickedUp
		o.PickupAt = &at
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order picked up",
		logx.String("event", "order_picked_up"),
		logx.String("tracking_id", result.TrackingID),
		logx.String("driver_id", caller),
	)

	return result, nil
}

// ConfirmDelivery closes out a picked_up order. The assigned driver must
// present the PIN the customer received at creation; a wrong PIN fails
// with apperr.ErrInvalidPin and leaves the order untouched.
func (s *Service) ConfirmDelivery(ctx context.Context, caller, rawTrackingID, pin string) (*domain.Order, error) {
	if caller == "" {
		return nil, apperr.ErrUnauthorized
	}
	trackingID, ok := domain.NormalizeTrackingID(rawTrackingID)
	if !ok {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result *domain.Order
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrNotFound
		}
		if !o.AssignedTo(caller) {
			return apperr.ErrForbidden
		}
		if o.Status != domain.StatusPickedUp {
			return apperr.ErrInvalidState
		}
		if !domain.PinEquals(pin, o.DeliveryPin) {
			return apperr.ErrInvalidPin
		}

		at := s.now()
		ok, err := tx.SetDelivered(ctx, trackingID, at)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidState
		}

		o.Status = domain.StatusDelivered
		o.DeliveredAt = &at
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order delivered",
		logx.String("event", "order_delivered"),
		logx.String("tracking_id", result.TrackingID),
		logx.String("driver_id", caller),
	)

	return result, nil
}

// Delete removes an order that has not been picked up yet. Only the
// creator may delete, and only while the order is pending or assigned.
func (s *Service) Delete(ctx context.Context, caller, rawTrackingID string) error {
	if caller == "" {
		return apperr.ErrUnauthorized
	}
	trackingID, ok := domain.NormalizeTrackingID(rawTrackingID)
	if !ok {
		return apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.GetForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrNotFound
		}
		if o.CustomerID != caller {
			return apperr.ErrForbidden
		}
		if !o.Status.Deletable() {
			return apperr.ErrInvalidState
		}

		ok, err := tx.Delete(ctx, trackingID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidState
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("order deleted",
		logx.String("event", "order_deleted"),
		logx.String("tracking_id", trackingID),
	)

	return nil
}
