package assignment

import (
	"context"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/timezone"
)

type DeclineRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeclineRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeclineRequest {
	return &DeclineRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeclineRequest) Execute(
	ctx context.Context,
	companyID uint,
	userID uint,
	requestID uint,
) (*models.MaintenanceRequest, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	req, err := uc.repo.GetRequest(ctx, companyID, requestID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if err := domain.CanDecline(domain.RequestStatus(req.Status)); err != nil {
		return nil, err
	}

	now := timezone.NowIn(company.Timezone)
	req.Status = string(domain.StatusDeclined)
	req.DeclinedAt = &now

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    "request_declined",
		Entity:    "maintenance_request",
		EntityID:  &req.ID,
	})

	return req, nil
}
