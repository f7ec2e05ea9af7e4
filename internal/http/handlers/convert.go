package handlers

import "beexpress/internal/domain"

func locationFromDTO(l locationDTO) domain.Location {
	return domain.Location{
		Address: l.Address,
		Coordinates: domain.Coordinates{
			Lat: l.Coordinates.Lat,
			Lng: l.Coordinates.Lng,
		},
	}
}

func locationToDTO(l domain.Location) locationDTO {
	return locationDTO{
		Address: l.Address,
		Coordinates: coordinatesDTO{
			Lat: l.Coordinates.Lat,
			Lng: l.Coordinates.Lng,
		},
	}
}

// orderToResponse renders an order for a viewer. The delivery PIN is the
// customer's secret: it is included only when the viewer created the order.
func orderToResponse(o *domain.Order, viewer string) orderResponse {
	resp := orderResponse{
		TrackingID:            o.TrackingID,
		CustomerID:            o.CustomerID,
		DriverID:              o.DriverID,
		Pickup:                locationToDTO(o.Pickup),
		Delivery:              locationToDTO(o.Delivery),
		ItemDescription:       o.ItemDescription,
		Weight:                o.Weight,
		PreferredDeliveryTime: o.PreferredDeliveryTime,
		SpecialInstructions:   o.SpecialInstructions,
		DeliveryFee:           o.DeliveryFee,
		DistanceKm:            o.DistanceKm,
		Status:                string(o.Status),
		PickupAt:              o.PickupAt,
		DeliveredAt:           o.DeliveredAt,
		CreatedAt:             o.CreatedAt,
	}
	if o.CustomerID == viewer {
		resp.DeliveryPin = o.DeliveryPin
	}
	return resp
}

func ordersToResponse(list []domain.Order, viewer string) listOrdersResponse {
	out := listOrdersResponse{Orders: make([]orderResponse, 0, len(list))}
	for i := range list {
		out.Orders = append(out.Orders, orderToResponse(&list[i], viewer))
	}
	return out
}

func assignmentToResponse(a *domain.RoleAssignment) profileResponse {
	return profileResponse{
		UserID:      a.UserID,
		Role:        string(a.Role),
		PhoneNumber: a.PhoneNumber,
		CreatedAt:   a.CreatedAt,
	}
}
