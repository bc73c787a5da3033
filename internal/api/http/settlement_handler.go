package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/service"
)

// SettlementHandler exposes monthly settlements and the per-vehicle export.
type SettlementHandler struct {
	settlementSvc service.SettlementService
}

func NewSettlementHandler(settlementSvc service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementSvc: settlementSvc}
}

type computeSettlementRequest struct {
	CustomerID string `json:"customer_id"`
	Period     string `json:"period"` // YYYY-MM
}

func (h *SettlementHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req computeSettlementRequest
	if !decodeBody(w, r, &req) {
		return
	}
	period, err := parsePeriod(req.Period)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s, err := h.settlementSvc.ComputeMonthly(r.Context(), req.CustomerID, period)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s)
}

func (h *SettlementHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s, err := h.settlementSvc.MarkPaid(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, r, domain.Validationf("customer_id", "customer_id query parameter is required"))
		return
	}
	settlements, err := h.settlementSvc.List(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settlements)
}

func (h *SettlementHandler) VehicleEconomy(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["id"]
	period, err := parsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	rows, err := h.settlementSvc.VehicleEconomy(r.Context(), customerID, period)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func parsePeriod(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.Validationf("period", "period is required (YYYY-MM)")
	}
	period, err := time.ParseInLocation("2006-01", raw, time.UTC)
	if err != nil {
		return time.Time{}, domain.Validationf("period", "period must be formatted YYYY-MM")
	}
	return period, nil
}
