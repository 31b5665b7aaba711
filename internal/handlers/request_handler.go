package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/dto"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	ucAssignment "github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

// ======================================================
// HANDLER
// ======================================================

type RequestHandler struct {
	db          *gorm.DB
	declineUC   *ucAssignment.DeclineRequest
	recommendUC *ucAssignment.RecommendWorkers
}

func NewRequestHandler(
	db *gorm.DB,
	declineUC *ucAssignment.DeclineRequest,
	recommendUC *ucAssignment.RecommendWorkers,
) *RequestHandler {
	return &RequestHandler{
		db:          db,
		declineUC:   declineUC,
		recommendUC: recommendUC,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *RequestHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	q := h.db.
		Preload("Property").
		Preload("Worker").
		Where("company_id = ?", companyID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if urgency := c.Query("urgency"); urgency != "" {
		q = q.Where("urgency = ?", urgency)
	}
	if dateStr := c.Query("scheduled_on"); dateStr != "" {
		var company models.Company
		if err := h.db.First(&company, companyID).Error; err != nil {
			httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		date, err := parseDateInCompany(&company, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("scheduled_date >= ? AND scheduled_date < ?", date, date.Add(24*time.Hour))
	}

	var requests []models.MaintenanceRequest
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		httperr.Internal(c, "request_list_failed", "Erro ao listar chamados.")
		return
	}

	out := make([]dto.RequestListDTO, 0, len(requests))
	for _, req := range requests {
		item := dto.RequestListDTO{
			ID:                     req.ID,
			PropertyCode:           req.Property.Code,
			UnitNumber:             req.UnitNumber,
			Title:                  req.Title,
			Urgency:                req.Urgency,
			RequiredSpecialization: req.RequiredSpecialization,
			Status:                 req.Status,
			WorkOrderNumber:        req.WorkOrderNumber,
			ScheduledDate:          req.ScheduledDate,
			CreatedAt:              req.CreatedAt,
		}
		if req.Worker != nil {
			item.WorkerName = req.Worker.Name
		}
		out = append(out, item)
	}

	httpresp.List(c, out)
}

// ======================================================
// GET
// ======================================================

func (h *RequestHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req models.MaintenanceRequest
	if err := h.db.
		Preload("Property").
		Preload("Tenant").
		Preload("Worker").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&req).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Chamado não encontrado.")
		return
	}

	c.JSON(200, req)
}

// ======================================================
// DECLINE
// ======================================================

func (h *RequestHandler) Decline(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	req, err := h.declineUC.Execute(c.Request.Context(), companyID, userID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Chamado não pode ser recusado.")
			return
		}
		if httperr.IsBusiness(err, "request_not_found") {
			httperr.NotFound(c, "request_not_found", "Chamado não encontrado.")
			return
		}
		httperr.Internal(c, "decline_failed", "Erro ao recusar chamado.")
		return
	}

	c.JSON(200, req)
}

// ======================================================
// CLOSE (done → closed, encerra o ciclo do chamado)
// ======================================================

func (h *RequestHandler) Close(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req models.MaintenanceRequest
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&req).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Chamado não encontrado.")
		return
	}

	if err := domain.CanClose(domain.RequestStatus(req.Status)); err != nil {
		httperr.BadRequest(c, "invalid_state", "Só chamados concluídos podem ser encerrados.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}
	now := nowInCompany(&company)

	req.Status = string(domain.StatusClosed)
	req.ClosedAt = &now

	if err := h.db.Save(&req).Error; err != nil {
		httperr.Internal(c, "close_failed", "Erro ao encerrar chamado.")
		return
	}

	writeAudit(h.db, companyID, &userID, "request_closed", "maintenance_request", &req.ID, nil)

	c.JSON(200, req)
}

// ======================================================
// RECOMMENDATIONS
// ======================================================

func (h *RequestHandler) Recommendations(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	topN := 5
	if n, err := strconv.Atoi(c.DefaultQuery("top", "5")); err == nil && n > 0 {
		topN = n
	}

	recs, err := h.recommendUC.Execute(c.Request.Context(), companyID, uint(id), topN)
	if err != nil {
		if httperr.IsBusiness(err, "request_not_found") {
			httperr.NotFound(c, "request_not_found", "Chamado não encontrado.")
			return
		}
		httperr.Internal(c, "recommendations_failed", "Erro ao montar sugestões.")
		return
	}

	httpresp.List(c, recs)
}

// ======================================================
// BEST MATCH
// ======================================================

func (h *RequestHandler) BestMatch(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req models.MaintenanceRequest
	if err := h.db.
		Preload("Property").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&req).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Chamado não encontrado.")
		return
	}

	var workers []*models.Worker
	if err := h.db.
		Preload("Bookings").
		Where("company_id = ? AND active = ?", companyID, true).
		Find(&workers).Error; err != nil {
		httperr.Internal(c, "worker_list_failed", "Erro ao listar profissionais.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	best := domain.BestMatch(workers, &req, nowInCompany(&company))
	if best == nil {
		httperr.NotFound(c, "no_eligible_worker", "Nenhum profissional elegível.")
		return
	}

	c.JSON(200, best)
}
