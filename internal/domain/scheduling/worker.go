package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

// ======================================================
// Scoring weights
// ======================================================

// Pesos nomeados e ajustáveis; os testes de propriedade fixam as
// desigualdades que eles precisam respeitar.
const (
	ScoreBase                = 100
	ScoreExactMatch          = 200
	ScoreGeneralFallback     = 100
	ScoreAvailableOnDate     = 50
	ScoreEmergencyBonus      = 40
	WorkloadAdjustmentCeil   = 30
	WorkloadAdjustmentPerJob = 3
)

const (
	SlotCapacityPerDay = 2

	DefaultWorkloadHorizonDays       = 30
	DefaultAvailabilityLookaheadDays = 60

	exactMatchCompletionTime = 2 * time.Hour
	fallbackCompletionTime   = 3 * time.Hour
)

// ReasonInactive é o texto fixo para worker inativo.
const ReasonInactive = "Worker is inactive"

// ======================================================
// Eligibility & Scoring
// ======================================================

func workerSpec(w *models.Worker) Specialization {
	return Specialization(w.Specialization)
}

func requiredSpec(req *models.MaintenanceRequest) Specialization {
	return Specialization(req.RequiredSpecialization)
}

// IsEligible: ativo, especialização compatível e chamado ainda
// atribuível.
func IsEligible(w *models.Worker, req *models.MaintenanceRequest) bool {
	if !w.Active {
		return false
	}
	if !workerSpec(w).CanService(requiredSpec(req)) {
		return false
	}
	return IsAssignable(RequestStatus(req.Status))
}

// Score pontua o worker para o chamado. Inativo ou inelegível → 0.
func Score(w *models.Worker, req *models.MaintenanceRequest, now time.Time) int {
	if !IsEligible(w, req) {
		return 0
	}

	score := ScoreBase

	switch {
	case workerSpec(w) == requiredSpec(req):
		score += ScoreExactMatch
	case workerSpec(w) == SpecGeneralMaintenance:
		score += ScoreGeneralFallback
	}

	if !IsFullyBookedOn(w, targetDate(req, now)) {
		score += ScoreAvailableOnDate
	}

	// Ajuste inverso à carga dos próximos 30 dias
	adj := WorkloadAdjustmentCeil - WorkloadAdjustmentPerJob*UpcomingWorkloadCount(w, now, DefaultWorkloadHorizonDays)
	if adj > 0 {
		score += adj
	}

	if Urgency(req.Urgency).IsEmergency() {
		score += ScoreEmergencyBonus
	}

	return score
}

// RecommendationConfidence: escala ancorada em 0.90 (match exato),
// 0.95 (match exato + emergência) e 0.0 (inativo).
func RecommendationConfidence(w *models.Worker, req *models.MaintenanceRequest) float64 {
	if !w.Active {
		return 0.0
	}

	var base float64
	switch {
	case workerSpec(w) == requiredSpec(req):
		base = 0.90
	case workerSpec(w) == SpecGeneralMaintenance:
		base = 0.60
	default:
		base = 0.30
	}

	if Urgency(req.Urgency).IsEmergency() {
		base += 0.05
	}
	if base > 1.0 {
		base = 1.0
	}
	return base
}

// RecommendationReasoning monta a justificativa legível da sugestão.
func RecommendationReasoning(w *models.Worker, req *models.MaintenanceRequest, now time.Time) string {
	if !w.Active {
		return ReasonInactive
	}

	var parts []string

	switch {
	case workerSpec(w) == requiredSpec(req):
		parts = append(parts, fmt.Sprintf(
			"exact %s specialization match", workerSpec(w).DisplayName()))
	case workerSpec(w) == SpecGeneralMaintenance:
		parts = append(parts, fmt.Sprintf(
			"general maintenance coverage for %s work", requiredSpec(req).DisplayName()))
	default:
		parts = append(parts, fmt.Sprintf(
			"%s specialization does not match the %s requirement",
			workerSpec(w).DisplayName(), requiredSpec(req).DisplayName()))
	}

	if !IsFullyBookedOn(w, targetDate(req, now)) {
		parts = append(parts, "available on the requested date")
	} else {
		parts = append(parts, "fully booked on the requested date")
	}

	if Urgency(req.Urgency).IsEmergency() {
		parts = append(parts, "qualified for emergency response")
	}

	return strings.Join(parts, "; ")
}

// EstimatedCompletionTime: 2h com match exato (emergência não reduz,
// já é o piso), 3h sem match, 0 inativo.
func EstimatedCompletionTime(w *models.Worker, req *models.MaintenanceRequest) time.Duration {
	if !w.Active {
		return 0
	}
	if workerSpec(w) == requiredSpec(req) {
		return exactMatchCompletionTime
	}
	return fallbackCompletionTime
}

// ======================================================
// Assignment check
// ======================================================

// AssignmentCheck é resultado de validação de negócio, nunca erro.
type AssignmentCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func ValidateWorkerAssignment(w *models.Worker, scheduledDate, now time.Time) AssignmentCheck {
	if !w.Active {
		return AssignmentCheck{Valid: false, Message: "worker is not active"}
	}
	if truncateToDay(scheduledDate).Before(truncateToDay(now)) {
		return AssignmentCheck{Valid: false, Message: "scheduled date must be in the future"}
	}
	return AssignmentCheck{Valid: true}
}

// ======================================================
// Availability queries
// ======================================================

func bookingsOnDay(w *models.Worker, date time.Time) int {
	count := 0
	for i := range w.Bookings {
		b := &w.Bookings[i]
		if IsBookingCompleted(b) {
			continue
		}
		if sameDay(b.ScheduledDate, date) {
			count++
		}
	}
	return count
}

// IsFullyBookedOn: capacidade de 2 agendamentos por dia.
func IsFullyBookedOn(w *models.Worker, date time.Time) bool {
	return bookingsOnDay(w, date) >= SlotCapacityPerDay
}

// UpcomingWorkloadCount conta agendamentos não concluídos dentro do
// horizonte a partir da data de referência.
func UpcomingWorkloadCount(w *models.Worker, reference time.Time, horizonDays int) int {
	if !w.Active {
		return 0
	}

	from := truncateToDay(reference)
	to := from.AddDate(0, 0, horizonDays)

	count := 0
	for i := range w.Bookings {
		b := &w.Bookings[i]
		if IsBookingCompleted(b) {
			continue
		}
		day := truncateToDay(b.ScheduledDate)
		if !day.Before(from) && !day.After(to) {
			count++
		}
	}
	return count
}

// BookedDates: dias com 2+ agendamentos dentro do intervalo.
func BookedDates(w *models.Worker, from, to time.Time) []time.Time {
	return datesWithCount(w, from, to, func(n int) bool { return n >= SlotCapacityPerDay })
}

// PartiallyBookedDates: dias com exatamente 1 agendamento.
func PartiallyBookedDates(w *models.Worker, from, to time.Time) []time.Time {
	return datesWithCount(w, from, to, func(n int) bool { return n == 1 })
}

func datesWithCount(w *models.Worker, from, to time.Time, match func(int) bool) []time.Time {
	if !w.Active {
		return nil
	}

	var dates []time.Time
	for day := truncateToDay(from); !day.After(truncateToDay(to)); day = day.AddDate(0, 0, 1) {
		if match(bookingsOnDay(w, day)) {
			dates = append(dates, day)
		}
	}
	return dates
}

// NextFullyAvailableDate: primeiro dia sem nenhum agendamento dentro
// da janela de lookahead; ok=false se não existir.
func NextFullyAvailableDate(w *models.Worker, reference time.Time, lookaheadDays int) (time.Time, bool) {
	if !w.Active {
		return time.Time{}, false
	}

	day := truncateToDay(reference)
	for i := 0; i <= lookaheadDays; i++ {
		if bookingsOnDay(w, day) == 0 {
			return day, true
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// AvailabilityScore: (dias até ficar livre * 100) + carga atual.
// Menor = melhor; usado só para ordenação de exibição.
func AvailabilityScore(w *models.Worker, reference time.Time) int {
	if !w.Active {
		return 0
	}

	days := DefaultAvailabilityLookaheadDays
	if next, ok := NextFullyAvailableDate(w, reference, DefaultAvailabilityLookaheadDays); ok {
		days = int(next.Sub(truncateToDay(reference)).Hours() / 24)
	}

	return days*100 + UpcomingWorkloadCount(w, reference, DefaultWorkloadHorizonDays)
}

// ActiveAssignmentCount: agendamentos ainda pendentes, sem recorte de
// horizonte.
func ActiveAssignmentCount(w *models.Worker) int {
	count := 0
	for i := range w.Bookings {
		if !IsBookingCompleted(&w.Bookings[i]) {
			count++
		}
	}
	return count
}

// ======================================================
// Mutation (única deste engine)
// ======================================================

// AssignToWork anexa um novo agendamento ao worker. Deve ser chamado
// somente depois que toda a validação passou.
func AssignToWork(w *models.Worker, workOrder string, scheduledDate time.Time, now time.Time) (*models.Booking, error) {
	booking, err := NewBooking(workOrder, scheduledDate, "", now)
	if err != nil {
		return nil, err
	}

	booking.WorkerID = w.ID
	w.Bookings = append(w.Bookings, *booking)
	return &w.Bookings[len(w.Bookings)-1], nil
}

func targetDate(req *models.MaintenanceRequest, now time.Time) time.Time {
	if req.ScheduledDate != nil {
		return *req.ScheduledDate
	}
	return now
}
