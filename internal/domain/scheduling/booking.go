package scheduling

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
)

// ===============================
// Completion State
// ===============================

const (
	BookingPending               = "pending"
	BookingCompletedSuccessful   = "completed_successful"
	BookingCompletedUnsuccessful = "completed_unsuccessful"

	maxBookingAdvance = 365 * 24 * time.Hour
)

var workOrderPattern = regexp.MustCompile(`^[A-Z0-9-]{3,20}$`)

// ===============================
// Construction
// ===============================

// NormalizeWorkOrderNumber normaliza para maiúsculas e valida o
// formato (3–20 caracteres alfanuméricos/hífen).
func NormalizeWorkOrderNumber(raw string) (string, error) {
	wo := strings.ToUpper(strings.TrimSpace(raw))
	if !workOrderPattern.MatchString(wo) {
		return "", httperr.ErrBusiness("invalid_work_order_number")
	}
	return wo, nil
}

// GenerateWorkOrderNumber cria um número de OS novo, ex.: WO-3F2A9C1B.
func GenerateWorkOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "WO-" + id[:8]
}

// NewBooking valida e monta um agendamento pendente. A data não pode
// estar a mais de 1 ano no futuro; não há limite inferior aqui para
// permitir reconstruir histórico — quem cria agendamento novo garante
// data futura via ValidateWorkerAssignment.
func NewBooking(workOrder string, scheduledDate time.Time, notes string, now time.Time) (*models.Booking, error) {
	wo, err := NormalizeWorkOrderNumber(workOrder)
	if err != nil {
		return nil, err
	}

	if scheduledDate.After(now.Add(maxBookingAdvance)) {
		return nil, httperr.ErrBusiness("booking_too_far_ahead")
	}

	return &models.Booking{
		WorkOrderNumber: wo,
		ScheduledDate:   truncateToDay(scheduledDate),
		AssignedAt:      now,
		Notes:           notes,
		CompletionState: BookingPending,
	}, nil
}

// ===============================
// Completion (one-shot)
// ===============================

func IsBookingCompleted(b *models.Booking) bool {
	return b.CompletionState != BookingPending && b.CompletionState != ""
}

// CompleteBooking marca a execução; chamar duas vezes é erro.
func CompleteBooking(b *models.Booking, successful bool, notes string, now time.Time) error {
	if IsBookingCompleted(b) {
		return httperr.ErrBusiness("booking_already_completed")
	}

	if successful {
		b.CompletionState = BookingCompletedSuccessful
	} else {
		b.CompletionState = BookingCompletedUnsuccessful
	}
	b.CompletedAt = &now
	b.CompletionNotes = notes
	return nil
}

// ===============================
// Calendar helpers
// ===============================

// BookingOverlaps testa sobreposição em granularidade de dia: o
// agendamento conflita com qualquer dia coberto por [date, date+duration].
func BookingOverlaps(b *models.Booking, date time.Time, duration time.Duration) bool {
	from := truncateToDay(date)
	to := truncateToDay(date.Add(duration))

	day := truncateToDay(b.ScheduledDate)
	return !day.Before(from) && !day.After(to)
}

func DaysUntilScheduled(b *models.Booking, now time.Time) int {
	return int(truncateToDay(b.ScheduledDate).Sub(truncateToDay(now)).Hours() / 24)
}

func IsScheduledToday(b *models.Booking, now time.Time) bool {
	return sameDay(b.ScheduledDate, now)
}

// IsOverdue: não concluído e a data já ficou para trás.
func IsOverdue(b *models.Booking, now time.Time) bool {
	return !IsBookingCompleted(b) &&
		truncateToDay(b.ScheduledDate).Before(truncateToDay(now))
}
