package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

type PropertyHandler struct {
	db *gorm.DB
}

func NewPropertyHandler(db *gorm.DB) *PropertyHandler {
	return &PropertyHandler{db: db}
}

type CreatePropertyRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

func (h *PropertyHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var properties []models.Property
	if err := h.db.
		Where("company_id = ?", companyID).
		Order("code ASC").
		Find(&properties).Error; err != nil {
		httperr.Internal(c, "property_list_failed", "Erro ao listar imóveis.")
		return
	}

	httpresp.List(c, properties)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var count int64
	h.db.Model(&models.Property{}).
		Where("company_id = ? AND code = ?", companyID, code).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "code_already_exists", "Código já cadastrado.")
		return
	}

	property := models.Property{
		CompanyID: companyID,
		Code:      code,
		Name:      req.Name,
		Address:   req.Address,
	}

	if err := h.db.Create(&property).Error; err != nil {
		httperr.Internal(c, "property_create_failed", "Erro ao criar imóvel.")
		return
	}

	c.JSON(201, property)
}
