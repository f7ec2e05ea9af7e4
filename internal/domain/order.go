package domain

import (
	"regexp"
	"strings"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// Order lifecycle: pending → assigned → picked_up → delivered.
// The status only moves forward, one step at a time.
const (
	StatusPending   OrderStatus = "pending"
	StatusAssigned  OrderStatus = "assigned"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
)

var allowedStatuses = [...]OrderStatus{
	StatusPending, StatusAssigned, StatusPickedUp, StatusDelivered,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Deletable reports whether an order in this status may still be removed
// by its creator.
func (s OrderStatus) Deletable() bool {
	return s == StatusPending || s == StatusAssigned
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Location is a human-readable address plus its coordinates.
type Location struct {
	Address     string
	Coordinates Coordinates
}

// Order aggregates the full state of a delivery order. TrackingID is the
// customer-facing handle; DriverID stays nil until exactly one driver wins
// the assignment.
type Order struct {
	TrackingID            string
	CustomerID            string
	DriverID              *string
	Pickup                Location
	Delivery              Location
	ItemDescription       string
	Weight                *float64
	PreferredDeliveryTime *string
	SpecialInstructions   *string
	DeliveryFee           float64
	DistanceKm            float64
	Status                OrderStatus
	DeliveryPin           string
	PickupAt              *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time
}

// AssignedTo reports whether the order is assigned to the given driver.
func (o *Order) AssignedTo(driverID string) bool {
	return o.DriverID != nil && *o.DriverID == driverID
}

// reTrackingID matches the public order handle: "BE" plus 8 base36 characters.
var reTrackingID = regexp.MustCompile(`^BE[0-9A-Z]{8}$`)

// NormalizeTrackingID trims and uppercases a raw tracking ID. The second
// return value is false when the result is not a valid handle.
func NormalizeTrackingID(raw string) (string, bool) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	return id, reTrackingID.MatchString(id)
}
