package scheduling

import (
	"fmt"
	"time"
)

// ======================================================
// Boundary DTOs
// ======================================================

// ExistingBookingSnapshot é a projeção imutável de um agendamento de
// OUTRO chamado, fornecida pela camada de persistência para detecção
// de conflito.
type ExistingBookingSnapshot struct {
	RequestID            uint           `json:"request_id"`
	PropertyCode         string         `json:"property_code"`
	UnitNumber           string         `json:"unit_number"`
	WorkerEmail          string         `json:"worker_email"`
	WorkerSpecialization Specialization `json:"worker_specialization"`
	WorkOrderNumber      string         `json:"work_order_number"`
	ScheduledDate        time.Time      `json:"scheduled_date"`
	Status               RequestStatus  `json:"status"`
	IsEmergency          bool           `json:"is_emergency"`
}

// AssignmentInput descreve a atribuição proposta.
type AssignmentInput struct {
	RequestID              uint
	PropertyCode           string
	UnitNumber             string
	ScheduledDate          time.Time
	WorkerEmail            string
	WorkerSpecialization   Specialization
	RequiredSpecialization Specialization
	IsEmergency            bool
}

// ValidationOutcome acumula o veredito e tudo que o chamador precisa
// persistir ou exibir.
type ValidationOutcome struct {
	Valid        bool     `json:"valid"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`

	AssignmentsToCancelForEmergency []ExistingBookingSnapshot `json:"assignments_to_cancel_for_emergency,omitempty"`

	HasEmergencyConflicts bool                      `json:"has_emergency_conflicts"`
	EmergencyConflicts    []ExistingBookingSnapshot `json:"emergency_conflicts,omitempty"`
}

func invalidOutcome(format string, args ...any) ValidationOutcome {
	return ValidationOutcome{
		Valid:        false,
		ErrorMessage: fmt.Sprintf(format, args...),
	}
}

// ======================================================
// Validator
// ======================================================

type conflictKey struct {
	property string
	unit     string
	day      string
}

func keyFor(property, unit string, date time.Time) conflictKey {
	return conflictKey{
		property: property,
		unit:     unit,
		day:      truncateToDay(date).Format("2006-01-02"),
	}
}

// ValidateAssignmentRequest valida a atribuição proposta contra o
// snapshot de agendamentos ativos. Sem estado e sem efeito colateral:
// quem serializa tentativas concorrentes é a camada de persistência.
func ValidateAssignmentRequest(in AssignmentInput, existing []ExistingBookingSnapshot) ValidationOutcome {
	// 1. Especialização
	if !in.WorkerSpecialization.CanService(in.RequiredSpecialization) {
		return invalidOutcome(
			"worker specialization %s cannot service a %s request",
			in.WorkerSpecialization.DisplayName(),
			in.RequiredSpecialization.DisplayName(),
		)
	}

	// 2. Índice (imóvel, unidade, dia) → lookup de conflito O(1)
	index := make(map[conflictKey][]ExistingBookingSnapshot, len(existing))
	for _, snap := range existing {
		if snap.RequestID == in.RequestID {
			continue
		}
		if !IsActiveBooking(snap.Status) {
			continue
		}
		k := keyFor(snap.PropertyCode, snap.UnitNumber, snap.ScheduledDate)
		index[k] = append(index[k], snap)
	}

	conflicts := index[keyFor(in.PropertyCode, in.UnitNumber, in.ScheduledDate)]
	if len(conflicts) == 0 {
		return ValidationOutcome{Valid: true}
	}

	// 3. Chamado normal com conflito → falha dura
	if !in.IsEmergency {
		return invalidOutcome(
			"unit %s at %s already has an active booking on %s",
			in.UnitNumber,
			in.PropertyCode,
			truncateToDay(in.ScheduledDate).Format("2006-01-02"),
		)
	}

	// 4. Emergência: agendamentos normais entram na lista de
	// cancelamento; emergências existentes viram apenas aviso (duas
	// emergências nunca se derrubam automaticamente).
	outcome := ValidationOutcome{Valid: true}
	for _, c := range conflicts {
		if c.IsEmergency {
			outcome.HasEmergencyConflicts = true
			outcome.EmergencyConflicts = append(outcome.EmergencyConflicts, c)
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf(
				"emergency booking %s already scheduled for unit %s; manual coordination required",
				c.WorkOrderNumber, c.UnitNumber,
			))
			continue
		}

		outcome.AssignmentsToCancelForEmergency = append(outcome.AssignmentsToCancelForEmergency, c)
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf(
			"existing booking %s for unit %s will be cancelled to honor the emergency",
			c.WorkOrderNumber, c.UnitNumber,
		))
	}

	return outcome
}

// ProcessEmergencyOverride projeta a lista de cancelamento nos ids de
// chamado que o chamador deve transicionar para failed. Nenhuma
// mutação acontece aqui.
func ProcessEmergencyOverride(toCancel []ExistingBookingSnapshot) []uint {
	seen := make(map[uint]bool, len(toCancel))
	ids := make([]uint, 0, len(toCancel))

	for _, snap := range toCancel {
		if seen[snap.RequestID] {
			continue
		}
		seen[snap.RequestID] = true
		ids = append(ids, snap.RequestID)
	}
	return ids
}
