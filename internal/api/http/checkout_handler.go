package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/service"
)

// CheckoutHandler exposes the vehicle-return settlement flow.
type CheckoutHandler struct {
	checkoutSvc service.CheckoutService
}

func NewCheckoutHandler(checkoutSvc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

type computeCheckoutRequest struct {
	BookingID        string          `json:"booking_id"`
	CheckinOdometer  int64           `json:"checkin_odometer"`
	CheckoutOdometer int64           `json:"checkout_odometer"`
	FuelStartPercent decimal.Decimal `json:"fuel_start_percent"`
	FuelEndPercent   decimal.Decimal `json:"fuel_end_percent"`
	ExteriorClean    bool            `json:"exterior_clean"`
	InteriorClean    bool            `json:"interior_clean"`
}

func (h *CheckoutHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req computeCheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rec, err := h.checkoutSvc.Compute(r.Context(), service.CheckoutInput{
		BookingID:        req.BookingID,
		CheckinOdometer:  req.CheckinOdometer,
		CheckoutOdometer: req.CheckoutOdometer,
		FuelStartPercent: req.FuelStartPercent,
		FuelEndPercent:   req.FuelEndPercent,
		ExteriorClean:    req.ExteriorClean,
		InteriorClean:    req.InteriorClean,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *CheckoutHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rec, err := h.checkoutSvc.Approve(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *CheckoutHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rec, err := h.checkoutSvc.Settle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
