package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	ucAssignment "github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

// ======================================================
// HANDLER (portal do morador, sem login)
// ======================================================

type PublicHandler struct {
	db       *gorm.DB
	submitUC *ucAssignment.SubmitRequest
}

func NewPublicHandler(db *gorm.DB, submitUC *ucAssignment.SubmitRequest) *PublicHandler {
	return &PublicHandler{
		db:       db,
		submitUC: submitUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SubmitMaintenanceRequest struct {
	PropertyCode string `json:"property_code" binding:"required"`
	UnitNumber   string `json:"unit_number" binding:"required"`

	TenantName  string `json:"tenant_name" binding:"required"`
	TenantPhone string `json:"tenant_phone" binding:"required"`
	TenantEmail string `json:"tenant_email"`

	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Urgency       string `json:"urgency"`
	PreferredTime string `json:"preferred_time"`
}

// ======================================================
// CREATE REQUEST
// ======================================================

func (h *PublicHandler) CreateRequest(c *gin.Context) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Administradora não encontrada.")
		return
	}

	var req SubmitMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.submitUC.Execute(c.Request.Context(), ucAssignment.SubmitRequestInput{
		CompanyID:         company.ID,
		PropertyCode:      req.PropertyCode,
		UnitNumber:        req.UnitNumber,
		TenantName:        req.TenantName,
		TenantPhone:       req.TenantPhone,
		TenantEmail:       req.TenantEmail,
		Title:             req.Title,
		Description:       req.Description,
		Urgency:           req.Urgency,
		PreferredTimeText: req.PreferredTime,
	})
	if err != nil {
		if httperr.IsBusiness(err, "property_not_found") {
			httperr.BadRequest(c, "property_not_found", "Imóvel não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_urgency") {
			httperr.BadRequest(c, "invalid_urgency", "Urgência inválida.")
			return
		}
		httperr.Internal(c, "request_create_failed", "Erro ao abrir chamado.")
		return
	}

	c.JSON(201, gin.H{
		"id":                      created.ID,
		"status":                  created.Status,
		"required_specialization": created.RequiredSpecialization,
		"urgency":                 created.Urgency,
	})
}

// ======================================================
// SLOTS (janelas padrão + preferência do morador)
// ======================================================

func (h *PublicHandler) Slots(c *gin.Context) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Administradora não encontrada.")
		return
	}

	date, err := parseDateInCompany(&company, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	now := nowInCompany(&company)

	slots, err := domain.StandardSlots(date, now)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data no passado.")
		return
	}

	if pref := c.Query("preference"); pref != "" {
		slot, err := domain.FromPreference(date, pref, now)
		if err == nil {
			slots = append(slots, slot)
		}
	}

	httpresp.List(c, slots)
}
