package assignment

import (
	"context"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/timezone"
)

type RecommendWorkers struct {
	repo domain.Repository
}

func NewRecommendWorkers(repo domain.Repository) *RecommendWorkers {
	return &RecommendWorkers{repo: repo}
}

func (uc *RecommendWorkers) Execute(
	ctx context.Context,
	companyID uint,
	requestID uint,
	topN int,
) ([]domain.Recommendation, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	req, err := uc.repo.GetRequest(ctx, companyID, requestID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	workers, err := uc.repo.ListActiveWorkers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(company.Timezone)
	return domain.Recommendations(workers, req, topN, now), nil
}
