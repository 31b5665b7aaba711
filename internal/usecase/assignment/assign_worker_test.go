package assignment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/audit"
	scheduling "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

// ======================================================
// Repositório em memória com semântica transacional: WithinTx roda
// sobre um clone e só aplica no commit, espelhando o rollback do gorm.
// ======================================================

type memRepo struct {
	companies  map[uint]*models.Company
	properties map[uint]*models.Property
	requests   map[uint]*models.MaintenanceRequest
	workers    map[uint]*models.Worker
	bookings   map[uint]*models.Booking

	nextBookingID uint

	createBookingErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		companies:     map[uint]*models.Company{},
		properties:    map[uint]*models.Property{},
		requests:      map[uint]*models.MaintenanceRequest{},
		workers:       map[uint]*models.Worker{},
		bookings:      map[uint]*models.Booking{},
		nextBookingID: 1,
	}
}

func (m *memRepo) clone() *memRepo {
	cp := newMemRepo()
	cp.nextBookingID = m.nextBookingID
	cp.createBookingErr = m.createBookingErr

	for id, c := range m.companies {
		v := *c
		cp.companies[id] = &v
	}
	for id, p := range m.properties {
		v := *p
		cp.properties[id] = &v
	}
	for id, r := range m.requests {
		v := *r
		cp.requests[id] = &v
	}
	for id, w := range m.workers {
		v := *w
		v.Bookings = append([]models.Booking(nil), w.Bookings...)
		cp.workers[id] = &v
	}
	for id, b := range m.bookings {
		v := *b
		cp.bookings[id] = &v
	}
	return cp
}

func (m *memRepo) WithinTx(_ context.Context, fn func(scheduling.Repository) error) error {
	tx := m.clone()
	if err := fn(tx); err != nil {
		return err
	}
	*m = *tx
	return nil
}

func (m *memRepo) GetCompanyByID(_ context.Context, id uint) (*models.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	v := *c
	return &v, nil
}

func (m *memRepo) GetCompanyBySlug(_ context.Context, slug string) (*models.Company, error) {
	for _, c := range m.companies {
		if c.Slug == slug {
			v := *c
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) GetPropertyByCode(_ context.Context, companyID uint, code string) (*models.Property, error) {
	for _, p := range m.properties {
		if p.CompanyID == companyID && p.Code == code {
			v := *p
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) GetOrCreateTenant(_ context.Context, companyID, propertyID uint, unitNumber, name, phone, email string) (*models.Tenant, error) {
	return &models.Tenant{
		ID:         1,
		CompanyID:  companyID,
		PropertyID: propertyID,
		UnitNumber: unitNumber,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}, nil
}

func (m *memRepo) CreateRequest(_ context.Context, req *models.MaintenanceRequest) error {
	if req.ID == 0 {
		req.ID = uint(len(m.requests) + 1)
	}
	v := *req
	m.requests[req.ID] = &v
	return nil
}

func (m *memRepo) GetRequest(_ context.Context, companyID, requestID uint) (*models.MaintenanceRequest, error) {
	r, ok := m.requests[requestID]
	if !ok || r.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	v := *r
	if p, ok := m.properties[r.PropertyID]; ok {
		v.Property = *p
	}
	return &v, nil
}

func (m *memRepo) UpdateRequest(_ context.Context, req *models.MaintenanceRequest) error {
	v := *req
	m.requests[req.ID] = &v
	return nil
}

func (m *memRepo) MarkRequestFailed(_ context.Context, companyID, requestID uint, now time.Time) error {
	r, ok := m.requests[requestID]
	if !ok || r.CompanyID != companyID {
		return gorm.ErrRecordNotFound
	}
	if r.Status != string(scheduling.StatusScheduled) {
		return errors.New("invalid_state")
	}
	r.Status = string(scheduling.StatusFailed)
	r.FailedAt = &now
	return nil
}

func (m *memRepo) GetWorkerWithBookings(_ context.Context, companyID, workerID uint) (*models.Worker, error) {
	w, ok := m.workers[workerID]
	if !ok || w.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	v := *w
	v.Bookings = nil
	for _, b := range m.bookings {
		if b.WorkerID == workerID {
			v.Bookings = append(v.Bookings, *b)
		}
	}
	return &v, nil
}

func (m *memRepo) ListActiveWorkers(_ context.Context, companyID uint) ([]*models.Worker, error) {
	var out []*models.Worker
	for id, w := range m.workers {
		if w.CompanyID != companyID || !w.Active {
			continue
		}
		v, _ := m.GetWorkerWithBookings(context.Background(), companyID, id)
		out = append(out, v)
	}
	return out, nil
}

func (m *memRepo) SnapshotActiveBookings(_ context.Context, companyID uint, propertyCode, unitNumber string, date time.Time) ([]scheduling.ExistingBookingSnapshot, error) {
	var snaps []scheduling.ExistingBookingSnapshot
	for _, r := range m.requests {
		if r.CompanyID != companyID || r.UnitNumber != unitNumber {
			continue
		}
		p, ok := m.properties[r.PropertyID]
		if !ok || p.Code != propertyCode {
			continue
		}
		status := scheduling.RequestStatus(r.Status)
		if !scheduling.IsActiveBooking(status) {
			continue
		}
		if r.ScheduledDate == nil {
			continue
		}
		d := *r.ScheduledDate
		if d.Year() != date.Year() || d.YearDay() != date.YearDay() {
			continue
		}
		snaps = append(snaps, scheduling.ExistingBookingSnapshot{
			RequestID:       r.ID,
			PropertyCode:    p.Code,
			UnitNumber:      r.UnitNumber,
			WorkOrderNumber: r.WorkOrderNumber,
			ScheduledDate:   d,
			Status:          status,
			IsEmergency:     scheduling.Urgency(r.Urgency).IsEmergency(),
		})
	}
	return snaps, nil
}

func (m *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	if m.createBookingErr != nil {
		return m.createBookingErr
	}
	b.ID = m.nextBookingID
	m.nextBookingID++
	v := *b
	m.bookings[b.ID] = &v
	return nil
}

func (m *memRepo) GetBookingForWorker(_ context.Context, bookingID, workerID uint) (*models.Booking, error) {
	b, ok := m.bookings[bookingID]
	if !ok || b.WorkerID != workerID {
		return nil, gorm.ErrRecordNotFound
	}
	v := *b
	return &v, nil
}

func (m *memRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	v := *b
	m.bookings[b.ID] = &v
	return nil
}

// ======================================================
// Fixture
// ======================================================

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

// empresa + imóvel + worker plumbing ativo + chamado emergencial
// submitted + chamado normal já agendado na mesma unidade/dia
func emergencyFixture(t *testing.T) (*memRepo, string) {
	t.Helper()

	repo := newMemRepo()

	repo.companies[1] = &models.Company{ID: 1, Name: "Predial Sul", Slug: "predial-sul", Timezone: "UTC"}
	repo.properties[1] = &models.Property{ID: 1, CompanyID: 1, Code: "SUNSET", Name: "Sunset Towers"}
	repo.workers[1] = &models.Worker{
		ID:             1,
		CompanyID:      1,
		Name:           "Maria",
		Email:          "maria@example.com",
		Specialization: string(scheduling.SpecPlumbing),
		Active:         true,
	}

	target := time.Now().UTC().AddDate(0, 0, 7)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	repo.requests[1] = &models.MaintenanceRequest{
		ID:                     1,
		CompanyID:              1,
		PropertyID:             1,
		UnitNumber:             "204",
		Title:                  "Cano estourado",
		Urgency:                string(scheduling.UrgencyEmergency),
		RequiredSpecialization: string(scheduling.SpecPlumbing),
		Status:                 string(scheduling.StatusSubmitted),
	}
	repo.requests[2] = &models.MaintenanceRequest{
		ID:                     2,
		CompanyID:              1,
		PropertyID:             1,
		UnitNumber:             "204",
		Title:                  "Troca de torneira",
		Urgency:                string(scheduling.UrgencyNormal),
		RequiredSpecialization: string(scheduling.SpecPlumbing),
		Status:                 string(scheduling.StatusScheduled),
		ScheduledDate:          &targetDay,
		WorkOrderNumber:        "WO-OLD1122",
	}

	return repo, targetDay.Format("2006-01-02")
}

// ======================================================
// Assign: cascata de emergência
// ======================================================

func TestAssignWorkerCommitsEmergencyCascade(t *testing.T) {
	repo, dateStr := emergencyFixture(t)
	uc := assignment.NewAssignWorker(repo, testDispatcher())

	out, err := uc.Execute(context.Background(), assignment.AssignWorkerInput{
		CompanyID: 1,
		UserID:    9,
		RequestID: 1,
		WorkerID:  1,
		Date:      dateStr,
	})
	require.NoError(t, err)

	assert.Equal(t, []uint{2}, out.CancelledRequestIDs)
	assert.Equal(t, string(scheduling.StatusFailed), repo.requests[2].Status)
	assert.Equal(t, string(scheduling.StatusScheduled), repo.requests[1].Status)
	assert.NotEmpty(t, repo.requests[1].WorkOrderNumber)
	assert.Len(t, repo.bookings, 1)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "cancelled")
}

func TestAssignWorkerRollsBackCascadeOnBookingFailure(t *testing.T) {
	repo, dateStr := emergencyFixture(t)
	repo.createBookingErr = errors.New("connection reset")

	uc := assignment.NewAssignWorker(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), assignment.AssignWorkerInput{
		CompanyID: 1,
		UserID:    9,
		RequestID: 1,
		WorkerID:  1,
		Date:      dateStr,
	})
	require.Error(t, err)

	// nada commitado: o chamado derrubado pela cascata volta a
	// scheduled e a emergência segue submitted
	assert.Equal(t, string(scheduling.StatusScheduled), repo.requests[2].Status)
	assert.Nil(t, repo.requests[2].FailedAt)
	assert.Equal(t, string(scheduling.StatusSubmitted), repo.requests[1].Status)
	assert.Empty(t, repo.requests[1].WorkOrderNumber)
	assert.Empty(t, repo.bookings)
}

func TestAssignWorkerNormalConflictChangesNothing(t *testing.T) {
	repo, dateStr := emergencyFixture(t)
	repo.requests[1].Urgency = string(scheduling.UrgencyNormal)

	uc := assignment.NewAssignWorker(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), assignment.AssignWorkerInput{
		CompanyID: 1,
		UserID:    9,
		RequestID: 1,
		WorkerID:  1,
		Date:      dateStr,
	})
	require.Error(t, err)

	assert.Equal(t, string(scheduling.StatusScheduled), repo.requests[2].Status)
	assert.Equal(t, string(scheduling.StatusSubmitted), repo.requests[1].Status)
	assert.Empty(t, repo.bookings)
}
