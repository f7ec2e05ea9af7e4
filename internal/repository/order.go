package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"beexpress/internal/apperr"
	"beexpress/internal/domain"
	"beexpress/internal/ports/ordertx"
)

const orderColumns = `tracking_id, customer_id, driver_id,
       pickup_address, pickup_lat, pickup_lng,
       delivery_address, delivery_lat, delivery_lng,
       item_description, weight, preferred_delivery_time, special_instructions,
       delivery_fee, distance_km, status, delivery_pin,
       pickup_at, delivered_at, created_at`

// OrderRepo represents the order repository.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(
		&o.TrackingID, &o.CustomerID, &o.DriverID,
		&o.Pickup.Address, &o.Pickup.Coordinates.Lat, &o.Pickup.Coordinates.Lng,
		&o.Delivery.Address, &o.Delivery.Coordinates.Lat, &o.Delivery.Coordinates.Lng,
		&o.ItemDescription, &o.Weight, &o.PreferredDeliveryTime, &o.SpecialInstructions,
		&o.DeliveryFee, &o.DistanceKm, &status, &o.DeliveryPin,
		&o.PickupAt, &o.DeliveredAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

// Insert persists a new order. The tracking_id primary key enforces handle
// uniqueness; a duplicate maps to apperr.ErrConflict.
func (r *OrderRepo) Insert(ctx context.Context, o *domain.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (
            tracking_id, customer_id,
            pickup_address, pickup_lat, pickup_lng,
            delivery_address, delivery_lat, delivery_lng,
            item_description, weight, preferred_delivery_time, special_instructions,
            delivery_fee, distance_km, status, delivery_pin, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
    `,
		o.TrackingID, o.CustomerID,
		o.Pickup.Address, o.Pickup.Coordinates.Lat, o.Pickup.Coordinates.Lng,
		o.Delivery.Address, o.Delivery.Coordinates.Lat, o.Delivery.Coordinates.Lng,
		o.ItemDescription, o.Weight, o.PreferredDeliveryTime, o.SpecialInstructions,
		o.DeliveryFee, o.DistanceKm, string(o.Status), o.DeliveryPin, o.CreatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert order %s: %w", o.TrackingID, err)
	}
	return nil
}

// GetByTrackingID returns an order by its tracking ID, or nil if none exists.
func (r *OrderRepo) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tracking_id = $1`, trackingID)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", trackingID, err)
	}
	return o, nil
}

// ListForCustomer returns all orders created by the customer.
func (r *OrderRepo) ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders for customer: %w", err)
	}
	return collectOrders(rows)
}

// ListForDriver returns every unassigned pending order plus any order
// already assigned to the driver.
func (r *OrderRepo) ListForDriver(ctx context.Context, driverID string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
         WHERE status = $1 OR driver_id = $2
         ORDER BY created_at DESC`,
		string(domain.StatusPending), driverID)
	if err != nil {
		return nil, fmt.Errorf("list orders for driver: %w", err)
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// WithTx opens a transaction and executes fn within it.
func (r *OrderRepo) WithTx(ctx context.Context, fn func(tx ordertx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// откатываем в случае паники
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents the per-transaction order repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetForUpdate locks the order row for the rest of the transaction, so the
// guard and the subsequent conditional update act as one unit relative to
// concurrent callers on the same tracking ID.
func (r *TxRepo) GetForUpdate(ctx context.Context, trackingID string) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tracking_id = $1 FOR UPDATE`, trackingID)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s for update: %w", trackingID, err)
	}
	return o, nil
}

// SetAssigned moves a pending, unassigned order to assigned with the given
// driver. The WHERE clause repeats the guard, so at most one concurrent
// accept can ever flip the row.
func (r *TxRepo) SetAssigned(ctx context.Context, trackingID, driverID string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $3, driver_id = $2
        WHERE tracking_id = $1 AND status = $4 AND driver_id IS NULL
    `, trackingID, driverID, string(domain.StatusAssigned), string(domain.StatusPending))
	if err != nil {
		return false, fmt.Errorf("assign order %s: %w", trackingID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetPickedUp moves an assigned order to picked_up and records the pickup time.
func (r *TxRepo) SetPickedUp(ctx context.Context, trackingID string, at time.Time) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $3, pickup_at = $2
        WHERE tracking_id = $1 AND status = $4
    `, trackingID, at, string(domain.StatusPickedUp), string(domain.StatusAssigned))
	if err != nil {
		return false, fmt.Errorf("mark order %s picked up: %w", trackingID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetDelivered moves a picked_up order to delivered and records the delivery time.
func (r *TxRepo) SetDelivered(ctx context.Context, trackingID string, at time.Time) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $3, delivered_at = $2
        WHERE tracking_id = $1 AND status = $4
    `, trackingID, at, string(domain.StatusDelivered), string(domain.StatusPickedUp))
	if err != nil {
		return false, fmt.Errorf("mark order %s delivered: %w", trackingID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes an order that has not been picked up yet.
func (r *TxRepo) Delete(ctx context.Context, trackingID string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        DELETE FROM orders
        WHERE tracking_id = $1 AND status IN ($2, $3)
    `, trackingID, string(domain.StatusPending), string(domain.StatusAssigned))
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", trackingID, err)
	}
	return ct.RowsAffected() > 0, nil
}
