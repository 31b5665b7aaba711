package assignment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AssignWorkerInput struct {
	CompanyID uint
	UserID    uint

	RequestID uint
	WorkerID  uint

	Date  string
	Notes string
}

type AssignWorkerOutput struct {
	Booking  *models.Booking            `json:"booking"`
	Request  *models.MaintenanceRequest `json:"request"`
	Warnings []string                   `json:"warnings,omitempty"`

	HasEmergencyConflicts bool                             `json:"has_emergency_conflicts"`
	EmergencyConflicts    []domain.ExistingBookingSnapshot `json:"emergency_conflicts,omitempty"`
	CancelledRequestIDs   []uint                           `json:"cancelled_request_ids,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type AssignWorker struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignWorker(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignWorker {
	return &AssignWorker{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Fluxo da fronteira descrita pelo engine: snapshot → validação →
// override de emergência → mutação do worker → persistência. A
// serialização de tentativas concorrentes vem do FOR UPDATE do
// snapshot; aqui nada é re-checado depois da validação.
func (uc *AssignWorker) Execute(
	ctx context.Context,
	in AssignWorkerInput,
) (*AssignWorkerOutput, error) {

	// --------------------------------------------------
	// 1. Empresa / timezone
	// --------------------------------------------------
	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(company.Timezone)

	scheduledDate, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(company.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// --------------------------------------------------
	// 2. Chamado: só submitted pode virar scheduled
	// --------------------------------------------------
	req, err := uc.repo.GetRequest(ctx, in.CompanyID, in.RequestID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if err := domain.CanSchedule(domain.RequestStatus(req.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Worker com a agenda carregada
	// --------------------------------------------------
	worker, err := uc.repo.GetWorkerWithBookings(ctx, in.CompanyID, in.WorkerID)
	if err != nil {
		return nil, httperr.ErrBusiness("worker_not_found")
	}

	if check := domain.ValidateWorkerAssignment(worker, scheduledDate, now); !check.Valid {
		return nil, httperr.ErrBusiness("assignment_rejected: " + check.Message)
	}

	if domain.IsFullyBookedOn(worker, scheduledDate) {
		return nil, httperr.ErrBusiness("worker_fully_booked")
	}

	// --------------------------------------------------
	// 4–6. Snapshot → validação → cascata → booking, tudo na mesma
	// transação: o FOR UPDATE do snapshot segura as linhas até aqui e
	// qualquer falha desfaz a cascata de emergência junto.
	// --------------------------------------------------
	var (
		booking   *models.Booking
		outcome   domain.ValidationOutcome
		cancelled []uint
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		snapshot, err := tx.SnapshotActiveBookings(
			ctx,
			in.CompanyID,
			req.Property.Code,
			req.UnitNumber,
			scheduledDate,
		)
		if err != nil {
			return err
		}

		outcome = domain.ValidateAssignmentRequest(domain.AssignmentInput{
			RequestID:              req.ID,
			PropertyCode:           req.Property.Code,
			UnitNumber:             req.UnitNumber,
			ScheduledDate:          scheduledDate,
			WorkerEmail:            worker.Email,
			WorkerSpecialization:   domain.Specialization(worker.Specialization),
			RequiredSpecialization: domain.Specialization(req.RequiredSpecialization),
			IsEmergency:            domain.Urgency(req.Urgency).IsEmergency(),
		}, snapshot)

		if !outcome.Valid {
			return httperr.ErrBusiness("scheduling_conflict: " + outcome.ErrorMessage)
		}

		cancelled = domain.ProcessEmergencyOverride(outcome.AssignmentsToCancelForEmergency)
		for _, requestID := range cancelled {
			if err := tx.MarkRequestFailed(ctx, in.CompanyID, requestID, now); err != nil {
				return err
			}
		}

		booking, err = domain.AssignToWork(
			worker,
			domain.GenerateWorkOrderNumber(),
			scheduledDate,
			now,
		)
		if err != nil {
			return err
		}

		booking.RequestID = req.ID
		booking.Notes = in.Notes

		if err := tx.CreateBooking(ctx, booking); err != nil {
			return err
		}

		req.Status = string(domain.StatusScheduled)
		req.WorkerID = &worker.ID
		req.ScheduledDate = &booking.ScheduledDate
		req.WorkOrderNumber = booking.WorkOrderNumber

		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Auditoria (só depois do commit)
	// --------------------------------------------------
	for _, requestID := range cancelled {
		failedID := requestID
		uc.audit.Dispatch(audit.Event{
			CompanyID: in.CompanyID,
			UserID:    &in.UserID,
			Action:    "request_failed_for_emergency",
			Entity:    "maintenance_request",
			EntityID:  &failedID,
		})
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.UserID,
		Action:    "worker_assigned",
		Entity:    "maintenance_request",
		EntityID:  &req.ID,
		Metadata: map[string]any{
			"worker_id":         worker.ID,
			"work_order_number": booking.WorkOrderNumber,
			"scheduled_date":    in.Date,
			"cancelled":         cancelled,
		},
	})

	return &AssignWorkerOutput{
		Booking:               booking,
		Request:               req,
		Warnings:              outcome.Warnings,
		HasEmergencyConflicts: outcome.HasEmergencyConflicts,
		EmergencyConflicts:    outcome.EmergencyConflicts,
		CancelledRequestIDs:   cancelled,
	}, nil
}
