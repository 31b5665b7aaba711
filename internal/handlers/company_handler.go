package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/timezone"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *CompanyHandler) GetMeCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	c.JSON(200, company)
}

func (h *CompanyHandler) UpdateMeCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		company.Timezone = *req.Timezone
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "company_update_failed", "Erro ao atualizar empresa.")
		return
	}

	c.JSON(200, company)
}
