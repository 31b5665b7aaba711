package assignment

import (
	"context"
	"fmt"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/timezone"
)

const availabilityCacheTTL = 60 * time.Second

type AvailabilityOverview struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewAvailabilityOverview(
	repo domain.Repository,
	cache *cache.Cache,
) *AvailabilityOverview {
	return &AvailabilityOverview{
		repo:  repo,
		cache: cache,
	}
}

// Execute monta o painel de disponibilidade dos workers ativos,
// ordenado pelo availability score (menor = mais livre). Resposta
// cacheada por 60s: dashboard aguenta ficar 1 minuto atrás.
func (uc *AvailabilityOverview) Execute(
	ctx context.Context,
	companyID uint,
) ([]domain.AvailabilitySummary, error) {

	cacheKey := fmt.Sprintf("availability_overview:%d", companyID)

	var cached []domain.AvailabilitySummary
	if uc.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	workers, err := uc.repo.ListActiveWorkers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(company.Timezone)

	summaries := make([]domain.AvailabilitySummary, 0, len(workers))
	for _, w := range workers {
		summaries = append(summaries, domain.WorkerAvailability(w, now))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].AvailabilityScore < summaries[j].AvailabilityScore
	})

	uc.cache.SetJSON(ctx, cacheKey, summaries, availabilityCacheTTL)
	return summaries, nil
}
