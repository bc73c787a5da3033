package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/service"
)

// CommissionHandler exposes the rate preview used by the staff UI before
// committing a settlement run.
type CommissionHandler struct {
	commissionSvc service.CommissionService
}

func NewCommissionHandler(commissionSvc service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionSvc: commissionSvc}
}

type commissionPreviewResponse struct {
	CustomerID string          `json:"customer_id"`
	Rate       decimal.Decimal `json:"rate"`
}

func (h *CommissionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, r, domain.Validationf("customer_id", "customer_id query parameter is required"))
		return
	}
	rate, err := h.commissionSvc.ResolveRate(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, commissionPreviewResponse{CustomerID: customerID, Rate: rate})
}

// GuaranteeHandler exposes the rental-day guarantee standing per vehicle.
type GuaranteeHandler struct {
	guaranteeSvc service.GuaranteeService
}

func NewGuaranteeHandler(guaranteeSvc service.GuaranteeService) *GuaranteeHandler {
	return &GuaranteeHandler{guaranteeSvc: guaranteeSvc}
}

func (h *GuaranteeHandler) Status(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["id"]

	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, domain.Validationf("year", "year must be a four-digit year"))
			return
		}
		year = parsed
	}

	status, err := h.guaranteeSvc.Status(r.Context(), vehicleID, year)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
