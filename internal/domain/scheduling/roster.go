package scheduling

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

// ======================================================
// Recommendation / Summary types
// ======================================================

type Recommendation struct {
	Worker              *models.Worker `json:"worker"`
	Score               int            `json:"score"`
	Confidence          float64        `json:"confidence"`
	Reasoning           string         `json:"reasoning"`
	EstimatedCompletion time.Duration  `json:"estimated_completion"`
}

type AvailabilitySummary struct {
	WorkerID       uint           `json:"worker_id"`
	WorkerName     string         `json:"worker_name"`
	Email          string         `json:"email"`
	Specialization Specialization `json:"specialization"`

	NextFullyAvailable *time.Time  `json:"next_fully_available,omitempty"`
	UpcomingWorkload   int         `json:"upcoming_workload"`
	FullyBookedDates   []time.Time `json:"fully_booked_dates,omitempty"`
	PartiallyBooked    []time.Time `json:"partially_booked_dates,omitempty"`

	AvailabilityScore int  `json:"availability_score"`
	ActiveAssignments int  `json:"active_assignments"`
	Active            bool `json:"active"`
}

type WorkloadStats struct {
	TotalWorkers      int     `json:"total_workers"`
	AverageWorkload   float64 `json:"average_workload"`
	MinWorkload       int     `json:"min_workload"`
	MaxWorkload       int     `json:"max_workload"`
	OverloadedWorkers int     `json:"overloaded_workers"`
}

// Acima disso o worker conta como sobrecarregado no dashboard.
const OverloadedWorkloadThreshold = 8

// ======================================================
// Roster queries
// ======================================================

// AvailableForEmergency: ativos e aptos a emergência (capacidade vem
// do cadastro, não da agenda atual).
func AvailableForEmergency(workers []*models.Worker) []*models.Worker {
	var out []*models.Worker
	for _, w := range workers {
		if w.Active && w.EmergencyCapable {
			out = append(out, w)
		}
	}
	return out
}

// BestMatch: maior Score entre os elegíveis; nil se ninguém serve.
func BestMatch(workers []*models.Worker, req *models.MaintenanceRequest, now time.Time) *models.Worker {
	var best *models.Worker
	bestScore := 0

	for _, w := range workers {
		if !IsEligible(w, req) {
			continue
		}
		if s := Score(w, req, now); best == nil || s > bestScore {
			best = w
			bestScore = s
		}
	}
	return best
}

// WithSpecialization: ativos com a categoria pedida ou general.
func WithSpecialization(workers []*models.Worker, category Specialization) []*models.Worker {
	var out []*models.Worker
	for _, w := range workers {
		if w.Active && workerSpec(w).CanService(category) {
			out = append(out, w)
		}
	}
	return out
}

// AvailableOnDate: ativos que ainda não lotaram o dia.
func AvailableOnDate(workers []*models.Worker, date time.Time) []*models.Worker {
	var out []*models.Worker
	for _, w := range workers {
		if w.Active && !IsFullyBookedOn(w, date) {
			out = append(out, w)
		}
	}
	return out
}

// WithLightWorkload: ativos com carga de 30 dias ≤ maxCount.
func WithLightWorkload(workers []*models.Worker, maxCount int, now time.Time) []*models.Worker {
	var out []*models.Worker
	for _, w := range workers {
		if w.Active && UpcomingWorkloadCount(w, now, DefaultWorkloadHorizonDays) <= maxCount {
			out = append(out, w)
		}
	}
	return out
}

// Recommendations monta e ordena as sugestões para o chamado.
func Recommendations(workers []*models.Worker, req *models.MaintenanceRequest, topN int, now time.Time) []Recommendation {
	recs := make([]Recommendation, 0, len(workers))

	for _, w := range workers {
		if !IsEligible(w, req) {
			continue
		}
		recs = append(recs, Recommendation{
			Worker:              w,
			Score:               Score(w, req, now),
			Confidence:          RecommendationConfidence(w, req),
			Reasoning:           RecommendationReasoning(w, req, now),
			EstimatedCompletion: EstimatedCompletionTime(w, req),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].Worker.Name < recs[j].Worker.Name
	})

	if topN > 0 && len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}

// GroupBySpecialization agrupa somente os ativos.
func GroupBySpecialization(workers []*models.Worker) map[Specialization][]*models.Worker {
	groups := make(map[Specialization][]*models.Worker)
	for _, w := range workers {
		if !w.Active {
			continue
		}
		spec := workerSpec(w)
		groups[spec] = append(groups[spec], w)
	}
	return groups
}

// WorkloadDistribution agrega a carga dos ativos; tudo zero quando
// não há worker ativo.
func WorkloadDistribution(workers []*models.Worker, now time.Time) WorkloadStats {
	var stats WorkloadStats
	total := 0

	for _, w := range workers {
		if !w.Active {
			continue
		}

		load := UpcomingWorkloadCount(w, now, DefaultWorkloadHorizonDays)

		if stats.TotalWorkers == 0 || load < stats.MinWorkload {
			stats.MinWorkload = load
		}
		if load > stats.MaxWorkload {
			stats.MaxWorkload = load
		}
		if load > OverloadedWorkloadThreshold {
			stats.OverloadedWorkers++
		}

		stats.TotalWorkers++
		total += load
	}

	if stats.TotalWorkers > 0 {
		stats.AverageWorkload = float64(total) / float64(stats.TotalWorkers)
	}
	return stats
}

// WorkerAvailability consolida a visão de agenda de um worker para os
// próximos 30 dias.
func WorkerAvailability(w *models.Worker, now time.Time) AvailabilitySummary {
	summary := AvailabilitySummary{
		WorkerID:       w.ID,
		WorkerName:     w.Name,
		Email:          w.Email,
		Specialization: workerSpec(w),
		Active:         w.Active,
	}

	if !w.Active {
		return summary
	}

	from := truncateToDay(now)
	to := from.AddDate(0, 0, DefaultWorkloadHorizonDays)

	if next, ok := NextFullyAvailableDate(w, now, DefaultAvailabilityLookaheadDays); ok {
		summary.NextFullyAvailable = &next
	}

	summary.UpcomingWorkload = UpcomingWorkloadCount(w, now, DefaultWorkloadHorizonDays)
	summary.FullyBookedDates = BookedDates(w, from, to)
	summary.PartiallyBooked = PartiallyBookedDates(w, from, to)
	summary.AvailabilityScore = AvailabilityScore(w, now)
	summary.ActiveAssignments = ActiveAssignmentCount(w)

	return summary
}
