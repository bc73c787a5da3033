package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fleetpay-backend/internal/logger"
	"fleetpay-backend/internal/service"
)

// Services bundles the service dependencies the HTTP surface needs.
type Services struct {
	Commission service.CommissionService
	Loan       service.LoanService
	Checkout   service.CheckoutService
	Settlement service.SettlementService
	Guarantee  service.GuaranteeService
}

// NewRouter builds the engine's full route table.
func NewRouter(svcs Services) *mux.Router {
	loanHandler := NewLoanHandler(svcs.Loan)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout)
	settlementHandler := NewSettlementHandler(svcs.Settlement)
	commissionHandler := NewCommissionHandler(svcs.Commission)
	guaranteeHandler := NewGuaranteeHandler(svcs.Guarantee)

	router := mux.NewRouter()
	router.Use(requestLogging)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/commission/preview", commissionHandler.Preview).Methods(http.MethodGet)

	api.HandleFunc("/loans", loanHandler.Originate).Methods(http.MethodPost)
	api.HandleFunc("/loans", loanHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/loans/consolidate", loanHandler.Consolidate).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/payments", loanHandler.RecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/payments", loanHandler.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/fee-paid", loanHandler.MarkFeePaid).Methods(http.MethodPost)

	api.HandleFunc("/checkouts", checkoutHandler.Compute).Methods(http.MethodPost)
	api.HandleFunc("/checkouts/{id}/approve", checkoutHandler.Approve).Methods(http.MethodPost)
	api.HandleFunc("/checkouts/{id}/settle", checkoutHandler.Settle).Methods(http.MethodPost)

	api.HandleFunc("/settlements/compute", settlementHandler.Compute).Methods(http.MethodPost)
	api.HandleFunc("/settlements", settlementHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/settlements/{id}/paid", settlementHandler.MarkPaid).Methods(http.MethodPost)

	api.HandleFunc("/vehicles/{id}/guarantee", guaranteeHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/vehicle-economy", settlementHandler.VehicleEconomy).Methods(http.MethodGet)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return router
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
