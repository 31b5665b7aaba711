package assignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduling "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/models"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

func completionFixture(t *testing.T, requestID uint) *memRepo {
	t.Helper()

	repo := newMemRepo()
	repo.companies[1] = &models.Company{ID: 1, Name: "Predial Sul", Slug: "predial-sul", Timezone: "UTC"}
	repo.workers[1] = &models.Worker{
		ID:             1,
		CompanyID:      1,
		Name:           "Maria",
		Email:          "maria@example.com",
		Specialization: string(scheduling.SpecPlumbing),
		Active:         true,
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	repo.bookings[5] = &models.Booking{
		ID:              5,
		WorkerID:        1,
		RequestID:       requestID,
		WorkOrderNumber: "WO-ABC12345",
		ScheduledDate:   day,
		CompletionState: scheduling.BookingPending,
	}
	return repo
}

func TestCompleteBookingTransitionsRequest(t *testing.T) {
	repo := completionFixture(t, 1)
	repo.requests[1] = &models.MaintenanceRequest{
		ID:        1,
		CompanyID: 1,
		Status:    string(scheduling.StatusScheduled),
	}

	uc := assignment.NewCompleteBooking(repo, testDispatcher())

	booking, err := uc.Execute(context.Background(), 1, 9, 1, 5, true, "tudo certo")
	require.NoError(t, err)

	assert.Equal(t, scheduling.BookingCompletedSuccessful, booking.CompletionState)
	assert.Equal(t, scheduling.BookingCompletedSuccessful, repo.bookings[5].CompletionState)
	assert.Equal(t, string(scheduling.StatusDone), repo.requests[1].Status)
}

func TestCompleteBookingUnsuccessfulFailsRequest(t *testing.T) {
	repo := completionFixture(t, 1)
	repo.requests[1] = &models.MaintenanceRequest{
		ID:        1,
		CompanyID: 1,
		Status:    string(scheduling.StatusScheduled),
	}

	uc := assignment.NewCompleteBooking(repo, testDispatcher())

	booking, err := uc.Execute(context.Background(), 1, 9, 1, 5, false, "morador ausente")
	require.NoError(t, err)

	assert.Equal(t, scheduling.BookingCompletedUnsuccessful, booking.CompletionState)
	assert.Equal(t, string(scheduling.StatusFailed), repo.requests[1].Status)
	assert.NotNil(t, repo.requests[1].FailedAt)
}

func TestCompleteBookingFailsWhenRequestLookupFails(t *testing.T) {
	// booking aponta para um chamado inexistente: a conclusão não pode
	// ser persistida deixando o chamado para trás
	repo := completionFixture(t, 404)

	uc := assignment.NewCompleteBooking(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), 1, 9, 1, 5, true, "")
	require.Error(t, err)

	assert.Equal(t, scheduling.BookingPending, repo.bookings[5].CompletionState)
	assert.Nil(t, repo.bookings[5].CompletedAt)
}
