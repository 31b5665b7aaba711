package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

type Repository interface {
	// -------- Transação --------

	// WithinTx executa fn com um Repository transacional: qualquer
	// erro retornado desfaz todas as escritas feitas dentro de fn.
	// Locks adquiridos (FOR UPDATE) valem até o commit/rollback.
	WithinTx(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	GetCompanyBySlug(
		ctx context.Context,
		slug string,
	) (*models.Company, error)

	// -------- Property --------
	GetPropertyByCode(
		ctx context.Context,
		companyID uint,
		code string,
	) (*models.Property, error)

	// -------- Tenant --------
	GetOrCreateTenant(
		ctx context.Context,
		companyID uint,
		propertyID uint,
		unitNumber string,
		name string,
		phone string,
		email string,
	) (*models.Tenant, error)

	// -------- Request --------
	CreateRequest(
		ctx context.Context,
		req *models.MaintenanceRequest,
	) error

	GetRequest(
		ctx context.Context,
		companyID uint,
		requestID uint,
	) (*models.MaintenanceRequest, error)

	UpdateRequest(
		ctx context.Context,
		req *models.MaintenanceRequest,
	) error

	MarkRequestFailed(
		ctx context.Context,
		companyID uint,
		requestID uint,
		now time.Time,
	) error

	// -------- Worker --------
	GetWorkerWithBookings(
		ctx context.Context,
		companyID uint,
		workerID uint,
	) (*models.Worker, error)

	ListActiveWorkers(
		ctx context.Context,
		companyID uint,
	) ([]*models.Worker, error)

	// -------- Booking (snapshot / create / state change) --------
	SnapshotActiveBookings(
		ctx context.Context,
		companyID uint,
		propertyCode string,
		unitNumber string,
		date time.Time,
	) ([]ExistingBookingSnapshot, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForWorker(
		ctx context.Context,
		bookingID uint,
		workerID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
