package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/dto"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type WorkerHandler struct {
	db *gorm.DB
}

func NewWorkerHandler(db *gorm.DB) *WorkerHandler {
	return &WorkerHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWorkerRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Specialization   string `json:"specialization" binding:"required"`
	EmergencyCapable bool   `json:"emergency_capable"`
}

type UpdateWorkerRequest struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Specialization   *string `json:"specialization"`
	Active           *bool   `json:"active"`
	EmergencyCapable *bool   `json:"emergency_capable"`
}

// ======================================================
// LIST (com filtros do roster)
// ======================================================

func (h *WorkerHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var workers []*models.Worker
	if err := h.db.
		Preload("Bookings").
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&workers).Error; err != nil {
		httperr.Internal(c, "worker_list_failed", "Erro ao listar profissionais.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}
	now := nowInCompany(&company)

	// --------------------------------------------------
	// Filtros opcionais (todos operam só sobre ativos)
	// --------------------------------------------------

	if spec := c.Query("specialization"); spec != "" {
		category, ok := domain.ParseSpecialization(spec)
		if !ok {
			httperr.BadRequest(c, "invalid_specialization", "Especialização desconhecida.")
			return
		}
		workers = domain.WithSpecialization(workers, category)
	}

	if dateStr := c.Query("available_on"); dateStr != "" {
		date, err := parseDateInCompany(&company, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		workers = domain.AvailableOnDate(workers, date)
	}

	if maxStr := c.Query("max_workload"); maxStr != "" {
		max, err := strconv.Atoi(maxStr)
		if err != nil || max < 0 {
			httperr.BadRequest(c, "invalid_max_workload", "Limite de carga inválido.")
			return
		}
		workers = domain.WithLightWorkload(workers, max, now)
	}

	if c.Query("emergency") == "true" {
		workers = domain.AvailableForEmergency(workers)
	}

	httpresp.List(c, workers)
}

// ======================================================
// CREATE
// ======================================================

func (h *WorkerHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	spec, ok := domain.ParseSpecialization(req.Specialization)
	if !ok {
		httperr.BadRequest(c, "invalid_specialization", "Especialização desconhecida.")
		return
	}

	worker := models.Worker{
		CompanyID:        companyID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Specialization:   string(spec),
		Active:           true,
		EmergencyCapable: req.EmergencyCapable,
	}

	if err := h.db.Create(&worker).Error; err != nil {
		httperr.Internal(c, "worker_create_failed", "Erro ao criar profissional.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	writeAudit(h.db, companyID, &userID, "worker_created", "worker", &worker.ID, nil)

	c.JSON(201, worker)
}

// ======================================================
// UPDATE (inclui ativar/desativar)
// ======================================================

func (h *WorkerHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var worker models.Worker
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&worker).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Phone != nil {
		worker.Phone = *req.Phone
	}
	if req.Specialization != nil {
		spec, ok := domain.ParseSpecialization(*req.Specialization)
		if !ok {
			httperr.BadRequest(c, "invalid_specialization", "Especialização desconhecida.")
			return
		}
		worker.Specialization = string(spec)
	}
	if req.Active != nil {
		worker.Active = *req.Active
	}
	if req.EmergencyCapable != nil {
		worker.EmergencyCapable = *req.EmergencyCapable
	}

	if err := h.db.Save(&worker).Error; err != nil {
		httperr.Internal(c, "worker_update_failed", "Erro ao atualizar profissional.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	writeAudit(h.db, companyID, &userID, "worker_updated", "worker", &worker.ID, nil)

	c.JSON(200, worker)
}

// ======================================================
// AVAILABILITY (agenda consolidada de um worker)
// ======================================================

func (h *WorkerHandler) Availability(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var worker models.Worker
	if err := h.db.
		Preload("Bookings").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&worker).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Profissional não encontrado.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	summary := domain.WorkerAvailability(&worker, nowInCompany(&company))
	c.JSON(200, summary)
}

// ======================================================
// BOOKINGS (ordens de serviço do worker)
// ======================================================

func (h *WorkerHandler) Bookings(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var worker models.Worker
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&worker).Error; err != nil {
		httperr.NotFound(c, "worker_not_found", "Profissional não encontrado.")
		return
	}

	var bookings []models.Booking
	query := h.db.
		Where("worker_id = ?", worker.ID).
		Order("scheduled_date ASC")

	// ?pending=true recorta só as ordens ainda abertas
	if c.Query("pending") == "true" {
		query = query.Where("completion_state = ?", domain.BookingPending)
	}

	if err := query.Find(&bookings).Error; err != nil {
		httperr.Internal(c, "booking_list_failed", "Erro ao listar ordens de serviço.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:              b.ID,
			WorkOrderNumber: b.WorkOrderNumber,
			ScheduledDate:   b.ScheduledDate,
			AssignedAt:      b.AssignedAt,
			CompletionState: b.CompletionState,
			CompletedAt:     b.CompletedAt,
			Notes:           b.Notes,
		})
	}

	httpresp.List(c, out)
}
