package assignment

import (
	"context"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute fecha o agendamento (one-shot) e propaga o resultado para o
// chamado: sucesso → done, insucesso → failed (fica livre para
// reagendar).
func (uc *CompleteBooking) Execute(
	ctx context.Context,
	companyID uint,
	userID uint,
	workerID uint,
	bookingID uint,
	successful bool,
	notes string,
) (*models.Booking, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	booking, err := uc.repo.GetBookingForWorker(ctx, bookingID, workerID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(company.Timezone)
	if err := domain.CompleteBooking(booking, successful, notes, now); err != nil {
		return nil, err
	}

	// Booking e transição do chamado commitam juntos: se o chamado não
	// puder ser carregado, nada é persistido.
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.UpdateBooking(ctx, booking); err != nil {
			return err
		}

		req, err := tx.GetRequest(ctx, companyID, booking.RequestID)
		if err != nil {
			return err
		}

		if err := domain.CanFinish(domain.RequestStatus(req.Status)); err != nil {
			// chamado já saiu de scheduled por outro caminho; o booking
			// fecha mesmo assim
			return nil
		}

		if successful {
			req.Status = string(domain.StatusDone)
		} else {
			req.Status = string(domain.StatusFailed)
			req.FailedAt = &now
		}
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	action := "booking_completed"
	if !successful {
		action = "booking_completed_unsuccessful"
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &userID,
		Action:    action,
		Entity:    "booking",
		EntityID:  &booking.ID,
	})

	return booking, nil
}
