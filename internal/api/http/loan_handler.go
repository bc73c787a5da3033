package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"fleetpay-backend/internal/domain"
	"fleetpay-backend/internal/service"
)

// LoanHandler exposes the loan ledger to the staff UI.
type LoanHandler struct {
	loanSvc service.LoanService
}

func NewLoanHandler(loanSvc service.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

type originateLoanRequest struct {
	CustomerID  string          `json:"customer_id"`
	VehicleID   *string         `json:"vehicle_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *LoanHandler) Originate(w http.ResponseWriter, r *http.Request) {
	var req originateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	loan, err := h.loanSvc.Originate(r.Context(), req.CustomerID, req.VehicleID, req.Amount, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

type consolidateLoansRequest struct {
	CustomerID  string          `json:"customer_id"`
	NewAmount   decimal.Decimal `json:"new_amount"`
	Description string          `json:"description"`
	RequestID   string          `json:"request_id"`
}

func (h *LoanHandler) Consolidate(w http.ResponseWriter, r *http.Request) {
	var req consolidateLoansRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RequestID == "" {
		respondError(w, r, domain.Validationf("request_id", "request_id is required"))
		return
	}
	loan, err := h.loanSvc.Consolidate(r.Context(), req.CustomerID, req.NewAmount, req.Description, req.RequestID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

type recordPaymentRequest struct {
	Amount decimal.Decimal        `json:"amount"`
	Type   domain.LoanPaymentType `json:"type"`
	Notes  string                 `json:"notes"`
}

type recordPaymentResponse struct {
	Loan    *domain.Loan        `json:"loan"`
	Payment *domain.LoanPayment `json:"payment"`
}

func (h *LoanHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req recordPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = domain.LoanPaymentTypeInstallment
	}
	loan, payment, err := h.loanSvc.RecordPayment(r.Context(), loanID, req.Amount, req.Type, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recordPaymentResponse{Loan: loan, Payment: payment})
}

func (h *LoanHandler) MarkFeePaid(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.loanSvc.MarkFeePaid(r.Context(), loanID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		respondError(w, r, domain.Validationf("customer_id", "customer_id query parameter is required"))
		return
	}
	loans, err := h.loanSvc.ListLoans(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	payments, err := h.loanSvc.ListPayments(r.Context(), loanID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// pathID parses a numeric path variable, answering 404 on garbage since the
// route never matches a real resource.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
