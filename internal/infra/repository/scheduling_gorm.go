package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

// WithinTx entrega a fn um repositório preso à transação: o FOR UPDATE
// do snapshot segura as linhas até o commit, então snapshot → validação
// → cascata → booking commitam ou desfazem juntos.
func (r *SchedulingGormRepository) WithinTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *SchedulingGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *SchedulingGormRepository) GetCompanyBySlug(
	ctx context.Context,
	slug string,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// --------------------------------------------------
// Property
// --------------------------------------------------

func (r *SchedulingGormRepository) GetPropertyByCode(
	ctx context.Context,
	companyID uint,
	code string,
) (*models.Property, error) {

	var property models.Property
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, code).
		First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *SchedulingGormRepository) GetOrCreateTenant(
	ctx context.Context,
	companyID uint,
	propertyID uint,
	unitNumber string,
	name string,
	phone string,
	email string,
) (*models.Tenant, error) {

	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND property_id = ? AND unit_number = ? AND phone = ?",
			companyID, propertyID, unitNumber, phone).
		First(&tenant).Error

	if err == nil {
		return &tenant, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tenant = models.Tenant{
		CompanyID:  companyID,
		PropertyID: propertyID,
		UnitNumber: unitNumber,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	if err := r.db.WithContext(ctx).Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Request
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateRequest(
	ctx context.Context,
	req *models.MaintenanceRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *SchedulingGormRepository) GetRequest(
	ctx context.Context,
	companyID uint,
	requestID uint,
) (*models.MaintenanceRequest, error) {

	var req models.MaintenanceRequest
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Where("id = ? AND company_id = ?", requestID, companyID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SchedulingGormRepository) UpdateRequest(
	ctx context.Context,
	req *models.MaintenanceRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *SchedulingGormRepository) MarkRequestFailed(
	ctx context.Context,
	companyID uint,
	requestID uint,
	now time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Where("id = ? AND company_id = ? AND status = ?",
			requestID, companyID, string(domain.StatusScheduled)).
		Updates(map[string]any{
			"status":    string(domain.StatusFailed),
			"failed_at": now,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// --------------------------------------------------
// Worker
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWorkerWithBookings(
	ctx context.Context,
	companyID uint,
	workerID uint,
) (*models.Worker, error) {

	var worker models.Worker
	if err := r.db.WithContext(ctx).
		Preload("Bookings").
		Where("id = ? AND company_id = ?", workerID, companyID).
		First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *SchedulingGormRepository) ListActiveWorkers(
	ctx context.Context,
	companyID uint,
) ([]*models.Worker, error) {

	var workers []*models.Worker
	if err := r.db.WithContext(ctx).
		Preload("Bookings").
		Where("company_id = ? AND active = ?", companyID, true).
		Order("name ASC").
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// --------------------------------------------------
// Booking (snapshot / create / state change)
// --------------------------------------------------

// SnapshotActiveBookings projeta os agendamentos ativos da unidade no
// dia. FOR UPDATE nas linhas de chamado: serializa duas tentativas
// concorrentes de agendar a mesma unidade/dia (TOCTOU resolvido aqui,
// não no engine).
func (r *SchedulingGormRepository) SnapshotActiveBookings(
	ctx context.Context,
	companyID uint,
	propertyCode string,
	unitNumber string,
	date time.Time,
) ([]domain.ExistingBookingSnapshot, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	type row struct {
		RequestID            uint
		PropertyCode         string
		UnitNumber           string
		WorkerEmail          string
		WorkerSpecialization string
		WorkOrderNumber      string
		ScheduledDate        time.Time
		Status               string
		Urgency              string
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "maintenance_requests"}}).
		Select(`maintenance_requests.id AS request_id,
			properties.code AS property_code,
			maintenance_requests.unit_number,
			workers.email AS worker_email,
			workers.specialization AS worker_specialization,
			maintenance_requests.work_order_number,
			maintenance_requests.scheduled_date,
			maintenance_requests.status,
			maintenance_requests.urgency`).
		Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
		Joins("LEFT JOIN workers ON workers.id = maintenance_requests.worker_id").
		Where(`maintenance_requests.company_id = ?
			AND properties.code = ?
			AND maintenance_requests.unit_number = ?
			AND maintenance_requests.status IN ?
			AND maintenance_requests.scheduled_date >= ?
			AND maintenance_requests.scheduled_date < ?`,
			companyID,
			propertyCode,
			unitNumber,
			[]string{string(domain.StatusScheduled), string(domain.StatusSubmitted)},
			dayStart,
			dayEnd,
		).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	snaps := make([]domain.ExistingBookingSnapshot, 0, len(rows))
	for _, rw := range rows {
		snaps = append(snaps, domain.ExistingBookingSnapshot{
			RequestID:            rw.RequestID,
			PropertyCode:         rw.PropertyCode,
			UnitNumber:           rw.UnitNumber,
			WorkerEmail:          rw.WorkerEmail,
			WorkerSpecialization: domain.Specialization(rw.WorkerSpecialization),
			WorkOrderNumber:      rw.WorkOrderNumber,
			ScheduledDate:        rw.ScheduledDate,
			Status:               domain.RequestStatus(rw.Status),
			IsEmergency:          domain.Urgency(rw.Urgency).IsEmergency(),
		})
	}
	return snaps, nil
}

func (r *SchedulingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *SchedulingGormRepository) GetBookingForWorker(
	ctx context.Context,
	bookingID uint,
	workerID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND worker_id = ?", bookingID, workerID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *SchedulingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}
