package postgres

import (
	"database/sql"

	"fleetpay-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.LoanRepository
	repository.SettlementRepository
	repository.CheckoutRepository
	repository.FineRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		CustomerRepository:     NewCustomerRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		LoanRepository:         NewLoanRepository(db),
		SettlementRepository:   NewSettlementRepository(db),
		CheckoutRepository:     NewCheckoutRepository(db),
		FineRepository:         NewFineRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
