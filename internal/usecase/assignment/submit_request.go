package assignment

import (
	"context"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitRequestInput struct {
	CompanyID uint

	PropertyCode string
	UnitNumber   string

	TenantName  string
	TenantPhone string
	TenantEmail string

	Title       string
	Description string
	Urgency     string

	PreferredTimeText string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitRequest {
	return &SubmitRequest{
		repo:  repo,
		audit: audit,
	}
}

// Execute registra o chamado do morador já classificado: o texto do
// problema decide a especialização exigida.
func (uc *SubmitRequest) Execute(
	ctx context.Context,
	in SubmitRequestInput,
) (*models.MaintenanceRequest, error) {

	property, err := uc.repo.GetPropertyByCode(ctx, in.CompanyID, in.PropertyCode)
	if err != nil {
		return nil, httperr.ErrBusiness("property_not_found")
	}

	urgency := domain.Urgency(in.Urgency)
	switch urgency {
	case domain.UrgencyNormal, domain.UrgencyHigh, domain.UrgencyEmergency:
	case "":
		urgency = domain.UrgencyNormal
	default:
		return nil, httperr.ErrBusiness("invalid_urgency")
	}

	tenant, err := uc.repo.GetOrCreateTenant(
		ctx,
		in.CompanyID,
		property.ID,
		in.UnitNumber,
		in.TenantName,
		in.TenantPhone,
		in.TenantEmail,
	)
	if err != nil {
		return nil, err
	}

	spec := domain.ClassifyIssue(in.Title, in.Description)

	req := &models.MaintenanceRequest{
		CompanyID:              in.CompanyID,
		PropertyID:             property.ID,
		TenantID:               &tenant.ID,
		UnitNumber:             in.UnitNumber,
		Title:                  in.Title,
		Description:            in.Description,
		Urgency:                string(urgency),
		RequiredSpecialization: string(spec),
		PreferredTimeText:      in.PreferredTimeText,
		Status:                 string(domain.StatusSubmitted),
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		Action:    "request_submitted",
		Entity:    "maintenance_request",
		EntityID:  &req.ID,
		Metadata: map[string]any{
			"property_code":  in.PropertyCode,
			"unit_number":    in.UnitNumber,
			"urgency":        string(urgency),
			"specialization": string(spec),
		},
	})

	return req, nil
}
