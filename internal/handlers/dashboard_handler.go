package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	ucAssignment "github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	db         *gorm.DB
	overviewUC *ucAssignment.AvailabilityOverview
}

func NewDashboardHandler(
	db *gorm.DB,
	overviewUC *ucAssignment.AvailabilityOverview,
) *DashboardHandler {
	return &DashboardHandler{
		db:         db,
		overviewUC: overviewUC,
	}
}

func (h *DashboardHandler) loadActiveWorkers(c *gin.Context, companyID uint) ([]*models.Worker, *models.Company, bool) {
	var workers []*models.Worker
	if err := h.db.
		Preload("Bookings").
		Where("company_id = ? AND active = ?", companyID, true).
		Find(&workers).Error; err != nil {
		httperr.Internal(c, "worker_list_failed", "Erro ao listar profissionais.")
		return nil, nil, false
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return nil, nil, false
	}

	return workers, &company, true
}

// ======================================================
// WORKLOAD
// ======================================================

func (h *DashboardHandler) Workload(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	workers, company, ok := h.loadActiveWorkers(c, companyID)
	if !ok {
		return
	}

	stats := domain.WorkloadDistribution(workers, nowInCompany(company))
	c.JSON(200, stats)
}

// ======================================================
// AVAILABILITY (cacheada)
// ======================================================

func (h *DashboardHandler) Availability(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	summaries, err := h.overviewUC.Execute(c.Request.Context(), companyID)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Erro ao montar painel.")
		return
	}

	httpresp.List(c, summaries)
}

// ======================================================
// GROUPS
// ======================================================

func (h *DashboardHandler) Groups(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	workers, _, ok := h.loadActiveWorkers(c, companyID)
	if !ok {
		return
	}

	c.JSON(200, domain.GroupBySpecialization(workers))
}
