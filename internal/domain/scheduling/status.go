package scheduling

import "github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"

// ===============================
// Request Status
// ===============================

type RequestStatus string

const (
	StatusDraft     RequestStatus = "draft"
	StatusSubmitted RequestStatus = "submitted"
	StatusScheduled RequestStatus = "scheduled"
	StatusDone      RequestStatus = "done"
	StatusClosed    RequestStatus = "closed"
	StatusDeclined  RequestStatus = "declined"
	StatusFailed    RequestStatus = "failed"
)

// ===============================
// Urgency
// ===============================

type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) IsEmergency() bool {
	return u == UrgencyEmergency
}

// ===============================
// Transitions
// ===============================

// CanSubmit define se um chamado pode ser enviado
func CanSubmit(current RequestStatus) error {
	if current != StatusDraft {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanSchedule: somente chamados submitted podem ser agendados
func CanSchedule(current RequestStatus) error {
	if current != StatusSubmitted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanDecline define se um chamado pode ser recusado
func CanDecline(current RequestStatus) error {
	if current != StatusSubmitted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinish cobre scheduled → done e scheduled → failed
func CanFinish(current RequestStatus) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFailForEmergency: só um agendamento ativo pode ser derrubado
// por uma emergência
func CanFailForEmergency(current RequestStatus) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanClose define se um chamado concluído pode ser encerrado
func CanClose(current RequestStatus) error {
	if current != StatusDone {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// IsAssignable: um worker só pode ser pontuado/atribuído enquanto o
// chamado não chegou em um estado terminal ou recusado.
func IsAssignable(current RequestStatus) bool {
	switch current {
	case StatusClosed, StatusDone, StatusFailed, StatusDeclined:
		return false
	}
	return true
}

// IsActiveBooking: estados que contam para detecção de conflito.
func IsActiveBooking(current RequestStatus) bool {
	return current == StatusScheduled || current == StatusSubmitted
}

func InitialStatus() RequestStatus {
	return StatusDraft
}
