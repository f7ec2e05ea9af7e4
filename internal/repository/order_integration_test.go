//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"beexpress/internal/apperr"
	"beexpress/internal/domain"
	"beexpress/internal/ports/ordertx"
	"beexpress/internal/repository"
)

type OrderRepositorySuite struct {
	suite.Suite
	repo *repository.OrderRepo
}

func (s *OrderRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")
	s.repo = repository.NewOrderRepo(tcPool)
}

func (s *OrderRepositorySuite) SetupTest() {
	_, err := tcPool.Exec(context.Background(), `TRUNCATE orders CASCADE`)
	s.Require().NoError(err)
}

func (s *OrderRepositorySuite) newOrder(trackingID, customerID string) *domain.Order {
	return &domain.Order{
		TrackingID: trackingID,
		CustomerID: customerID,
		Pickup: domain.Location{
			Address:     "1 Main St",
			Coordinates: domain.Coordinates{Lat: 55.75, Lng: 37.62},
		},
		Delivery: domain.Location{
			Address:     "2 Side St",
			Coordinates: domain.Coordinates{Lat: 55.76, Lng: 37.63},
		},
		ItemDescription: "books",
		DeliveryFee:     700,
		DistanceKm:      2,
		Status:          domain.StatusPending,
		DeliveryPin:     "0420",
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *OrderRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	in := s.newOrder("BE00000001", "cust_1")
	w := 1.5
	in.Weight = &w
	note := "leave at the door"
	in.SpecialInstructions = &note

	s.Require().NoError(s.repo.Insert(ctx, in))

	got, err := s.repo.GetByTrackingID(ctx, "BE00000001")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(in.CustomerID, got.CustomerID)
	s.Equal(in.Pickup, got.Pickup)
	s.Equal(in.Delivery, got.Delivery)
	s.Equal(in.ItemDescription, got.ItemDescription)
	s.Require().NotNil(got.Weight)
	s.InDelta(w, *got.Weight, 1e-9)
	s.Require().NotNil(got.SpecialInstructions)
	s.Equal(note, *got.SpecialInstructions)
	s.Equal(domain.StatusPending, got.Status)
	s.Equal("0420", got.DeliveryPin)
	s.Nil(got.DriverID)
	s.Nil(got.PickupAt)
	s.Nil(got.DeliveredAt)
}

func (s *OrderRepositorySuite) TestInsert_DuplicateTrackingID() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))

	err := s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_2"))
	s.ErrorIs(err, apperr.ErrConflict)
}

func (s *OrderRepositorySuite) TestGet_Missing() {
	got, err := s.repo.GetByTrackingID(context.Background(), "BE99999999")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *OrderRepositorySuite) TestListForCustomer() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))
	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000002", "cust_1")))
	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000003", "cust_2")))

	got, err := s.repo.ListForCustomer(ctx, "cust_1")
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *OrderRepositorySuite) TestListForDriver_PendingPlusOwn() {
	ctx := context.Background()

	// pending: visible to every driver
	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))

	// assigned to drv_1: visible to drv_1 only
	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000002", "cust_1")))
	s.assign("BE00000002", "drv_1")

	// assigned to drv_2: invisible to drv_1
	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000003", "cust_2")))
	s.assign("BE00000003", "drv_2")

	got, err := s.repo.ListForDriver(ctx, "drv_1")
	s.Require().NoError(err)
	s.Len(got, 2)

	ids := map[string]bool{}
	for _, o := range got {
		ids[o.TrackingID] = true
	}
	s.True(ids["BE00000001"])
	s.True(ids["BE00000002"])
}

func (s *OrderRepositorySuite) assign(trackingID, driverID string) {
	s.T().Helper()
	err := s.repo.WithTx(context.Background(), func(tx ordertx.Repository) error {
		ok, err := tx.SetAssigned(context.Background(), trackingID, driverID)
		s.Require().NoError(err)
		s.Require().True(ok)
		return nil
	})
	s.Require().NoError(err)
}

func (s *OrderRepositorySuite) TestSetAssigned_GuardRejectsSecondDriver() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))
	s.assign("BE00000001", "drv_1")

	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.SetAssigned(ctx, "BE00000001", "drv_2")
		s.Require().NoError(err)
		s.False(ok, "guarded update must not overwrite the assignment")
		return nil
	})
	s.Require().NoError(err)

	got, err := s.repo.GetByTrackingID(ctx, "BE00000001")
	s.Require().NoError(err)
	s.Require().NotNil(got.DriverID)
	s.Equal("drv_1", *got.DriverID)
}

func (s *OrderRepositorySuite) TestConcurrentAssign_ExactlyOneWins() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i, drv := range []string{"drv_1", "drv_2"} {
		wg.Add(1)
		go func(i int, drv string) {
			defer wg.Done()
			err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
				o, err := tx.GetForUpdate(ctx, "BE00000001")
				if err != nil {
					return err
				}
				if o == nil || o.Status != domain.StatusPending || o.DriverID != nil {
					return nil
				}
				ok, err := tx.SetAssigned(ctx, "BE00000001", drv)
				results[i] = ok
				return err
			})
			s.Require().NoError(err)
		}(i, drv)
	}
	wg.Wait()

	s.NotEqual(results[0], results[1], "exactly one transaction must win")
}

func (s *OrderRepositorySuite) TestLifecycleUpdatesAreGuarded() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))
	now := time.Now().UTC().Truncate(time.Microsecond)

	// picked_up before assignment must not apply
	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.SetPickedUp(ctx, "BE00000001", now)
		s.Require().NoError(err)
		s.False(ok)
		return nil
	})
	s.Require().NoError(err)

	s.assign("BE00000001", "drv_1")

	err = s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.SetPickedUp(ctx, "BE00000001", now)
		s.Require().NoError(err)
		s.True(ok)
		return nil
	})
	s.Require().NoError(err)

	err = s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.SetDelivered(ctx, "BE00000001", now)
		s.Require().NoError(err)
		s.True(ok)
		return nil
	})
	s.Require().NoError(err)

	got, err := s.repo.GetByTrackingID(ctx, "BE00000001")
	s.Require().NoError(err)
	s.Equal(domain.StatusDelivered, got.Status)
	s.Require().NotNil(got.PickupAt)
	s.Require().NotNil(got.DeliveredAt)

	// delivered orders are no longer deletable
	err = s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.Delete(ctx, "BE00000001")
		s.Require().NoError(err)
		s.False(ok)
		return nil
	})
	s.Require().NoError(err)
}

func (s *OrderRepositorySuite) TestDelete_PendingOrAssignedOnly() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))

	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.Delete(ctx, "BE00000001")
		s.Require().NoError(err)
		s.True(ok)
		return nil
	})
	s.Require().NoError(err)

	got, err := s.repo.GetByTrackingID(ctx, "BE00000001")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *OrderRepositorySuite) TestWithTx_RollbackOnError() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Insert(ctx, s.newOrder("BE00000001", "cust_1")))

	err := s.repo.WithTx(ctx, func(tx ordertx.Repository) error {
		ok, err := tx.SetAssigned(ctx, "BE00000001", "drv_1")
		s.Require().NoError(err)
		s.Require().True(ok)
		return apperr.ErrConflict
	})
	s.ErrorIs(err, apperr.ErrConflict)

	got, err := s.repo.GetByTrackingID(ctx, "BE00000001")
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, got.Status, "failed transaction must leave the row unchanged")
	s.Nil(got.DriverID)
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositorySuite))
}
