package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"beexpress/internal/apperr"
	"beexpress/internal/http/middleware"
	"beexpress/internal/logx"
	"beexpress/internal/pricing"
	"beexpress/internal/service/orders"
)

// OrderHandler handles HTTP requests for order resources.
type OrderHandler struct {
	usecase ordersUsecase
	geo     distancer
	logger  logx.Logger
}

// NewOrderHandler creates a new OrderHandler. geo may be nil, in which
// case every order is priced with the zero-distance fallback.
func NewOrderHandler(logger logx.Logger, uc ordersUsecase, geo distancer) *OrderHandler {
	return &OrderHandler{usecase: uc, geo: geo, logger: logger}
}

// distanceKm resolves the route distance between pickup and delivery.
// A slow or failed lookup degrades to zero distance instead of failing
// the order: base fee still applies and the order stays creatable.
func (h *OrderHandler) distanceKm(r *http.Request, req *createOrderRequest) float64 {
	if h.geo == nil {
		return 0
	}
	km, err := h.geo.RouteDistanceKm(r.Context(),
		locationFromDTO(req.Pickup).Coordinates,
		locationFromDTO(req.Delivery).Coordinates,
	)
	if err != nil {
		h.logger.Warn("distance lookup failed, using zero-distance fallback",
			logx.String("req_id", reqID(r.Context())),
			logx.String("tracking_id", req.TrackingID),
			logx.Any("err", err),
		)
		return 0
	}
	return km
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())

	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	km := h.distanceKm(r, &req)
	in := orders.CreateInput{
		TrackingID:            req.TrackingID,
		Pickup:                locationFromDTO(req.Pickup),
		Delivery:              locationFromDTO(req.Delivery),
		ItemDescription:       req.ItemDescription,
		Weight:                req.Weight,
		PreferredDeliveryTime: req.PreferredDeliveryTime,
		SpecialInstructions:   req.SpecialInstructions,
		DeliveryFee:           pricing.Fee(km),
		DistanceKm:            km,
	}

	o, err := h.usecase.Create(r.Context(), caller, in)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(o, caller))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "only customers can create orders")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "caller role not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "tracking id already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())

	list, err := h.usecase.ListFor(r.Context(), caller)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list, caller))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "caller role not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Get handles GET /orders/{trackingID}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())
	trackingID := chi.URLParam(r, "trackingID")

	o, err := h.usecase.Get(r.Context(), caller, trackingID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o, caller))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid tracking id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Accept handles POST /orders/{trackingID}/accept.
func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())
	trackingID := chi.URLParam(r, "trackingID")

	o, err := h.usecase.Accept(r.Context(), caller, trackingID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o, caller))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid tracking id")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "only drivers can accept orders")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "order already assigned")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Pickup handles POST /orders/{trackingID}/pickup.
func (h *OrderHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())
	trackingID := chi.URLParam(r, "trackingID")

	o, err := h.usecase.MarkPickedUp(r.Context(), caller, trackingID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o, caller))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid tracking id")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "order is not assigned to you")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrInvalidState):
		writeError(h.logger, w, r, http.StatusConflict, "order is not in assigned state")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Confirm handles POST /orders/{trackingID}/confirm.
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())
	trackingID := chi.URLParam(r, "trackingID")

	var req confirmDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.usecase.ConfirmDelivery(r.Context(), caller, trackingID, req.Pin)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(o, caller))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid tracking id")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "order is not assigned to you")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrInvalidState):
		writeError(h.logger, w, r, http.StatusConflict, "order is not in picked_up state")
	case errors.Is(err, apperr.ErrInvalidPin):
		writeError(h.logger, w, r, http.StatusUnprocessableEntity, "wrong delivery pin")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Delete handles DELETE /orders/{trackingID}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())
	trackingID := chi.URLParam(r, "trackingID")

	err := h.usecase.Delete(r.Context(), caller, trackingID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid tracking id")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "only the creator can delete an order")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, apperr.ErrInvalidState):
		writeError(h.logger, w, r, http.StatusConflict, "order already picked up")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
