package handlers

import "time"

type coordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationDTO struct {
	Address     string         `json:"address"`
	Coordinates coordinatesDTO `json:"coordinates"`
}

type createOrderRequest struct {
	TrackingID            string      `json:"tracking_id"`
	Pickup                locationDTO `json:"pickup"`
	Delivery              locationDTO `json:"delivery"`
	ItemDescription       string      `json:"item_description"`
	Weight                *float64    `json:"weight,omitempty"`
	PreferredDeliveryTime *string     `json:"preferred_delivery_time,omitempty"`
	SpecialInstructions   *string     `json:"special_instructions,omitempty"`
}

type confirmDeliveryRequest struct {
	Pin string `json:"pin"`
}

type orderResponse struct {
	TrackingID            string      `json:"tracking_id"`
	CustomerID            string      `json:"customer_id"`
	DriverID              *string     `json:"driver_id,omitempty"`
	Pickup                locationDTO `json:"pickup"`
	Delivery              locationDTO `json:"delivery"`
	ItemDescription       string      `json:"item_description"`
	Weight                *float64    `json:"weight,omitempty"`
	PreferredDeliveryTime *string     `json:"preferred_delivery_time,omitempty"`
	SpecialInstructions   *string     `json:"special_instructions,omitempty"`
	DeliveryFee           float64     `json:"delivery_fee"`
	DistanceKm            float64     `json:"distance_km"`
	Status                string      `json:"status"`
	DeliveryPin           string      `json:"delivery_pin,omitempty"`
	PickupAt              *time.Time  `json:"pickup_at,omitempty"`
	DeliveredAt           *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
}

type profileResponse struct {
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type userEventRequest struct {
	Type string `json:"type"`
	Data struct {
		ID          string    `json:"id"`
		Role        string    `json:"role"`
		PhoneNumber string    `json:"phone_number"`
		CreatedAt   time.Time `json:"created_at"`
	} `json:"data"`
}
