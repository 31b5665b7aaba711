package scheduling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduling "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
)

func plumbingInput(emergency bool) scheduling.AssignmentInput {
	return scheduling.AssignmentInput{
		RequestID:              10,
		PropertyCode:           "SUNSET",
		UnitNumber:             "204",
		ScheduledDate:          day(3),
		WorkerEmail:            "maria@example.com",
		WorkerSpecialization:   scheduling.SpecPlumbing,
		RequiredSpecialization: scheduling.SpecPlumbing,
		IsEmergency:            emergency,
	}
}

func snapshot(requestID uint, unit string, emergency bool) scheduling.ExistingBookingSnapshot {
	return scheduling.ExistingBookingSnapshot{
		RequestID:            requestID,
		PropertyCode:         "SUNSET",
		UnitNumber:           unit,
		WorkerEmail:          "joao@example.com",
		WorkerSpecialization: scheduling.SpecGeneralMaintenance,
		WorkOrderNumber:      "WO-AAA111",
		ScheduledDate:        day(3),
		Status:               scheduling.StatusScheduled,
		IsEmergency:          emergency,
	}
}

func TestValidateAssignmentSpecializationMismatch(t *testing.T) {
	in := plumbingInput(false)
	in.WorkerSpecialization = scheduling.SpecElectrical

	outcome := scheduling.ValidateAssignmentRequest(in, nil)

	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.ErrorMessage, "Electrical")
	assert.Contains(t, outcome.ErrorMessage, "Plumbing")
}

func TestValidateAssignmentGeneralMaintenanceServesAll(t *testing.T) {
	in := plumbingInput(false)
	in.WorkerSpecialization = scheduling.SpecGeneralMaintenance

	outcome := scheduling.ValidateAssignmentRequest(in, nil)
	assert.True(t, outcome.Valid)
}

func TestValidateAssignmentNoConflict(t *testing.T) {
	existing := []scheduling.ExistingBookingSnapshot{
		snapshot(20, "305", false), // outra unidade
	}

	other := snapshot(21, "204", false) // mesma unidade, outro dia
	other.ScheduledDate = day(4)
	existing = append(existing, other)

	outcome := scheduling.ValidateAssignmentRequest(plumbingInput(false), existing)

	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Warnings)
	assert.Empty(t, outcome.AssignmentsToCancelForEmergency)
}

func TestValidateAssignmentNormalConflict(t *testing.T) {
	existing := []scheduling.ExistingBookingSnapshot{snapshot(20, "204", false)}

	outcome := scheduling.ValidateAssignmentRequest(plumbingInput(false), existing)

	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.ErrorMessage, "204")
	assert.Contains(t, outcome.ErrorMessage, "SUNSET")
	assert.Empty(t, outcome.AssignmentsToCancelForEmergency)
}

func TestValidateAssignmentEmergencyOverridesNormal(t *testing.T) {
	existing := []scheduling.ExistingBookingSnapshot{snapshot(20, "204", false)}

	outcome := scheduling.ValidateAssignmentRequest(plumbingInput(true), existing)

	assert.True(t, outcome.Valid)
	assert.False(t, outcome.HasEmergencyConflicts)
	require.Len(t, outcome.AssignmentsToCancelForEmergency, 1)
	assert.Equal(t, uint(20), outcome.AssignmentsToCancelForEmergency[0].RequestID)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "cancelled")
}

func TestValidateAssignmentEmergencyVsEmergency(t *testing.T) {
	existing := []scheduling.ExistingBookingSnapshot{snapshot(20, "204", true)}

	outcome := scheduling.ValidateAssignmentRequest(plumbingInput(true), existing)

	// duas emergências nunca se derrubam automaticamente
	assert.True(t, outcome.Valid)
	assert.True(t, outcome.HasEmergencyConflicts)
	assert.Empty(t, outcome.AssignmentsToCancelForEmergency)
	require.Len(t, outcome.EmergencyConflicts, 1)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "manual coordination")
}

func TestValidateAssignmentMixedConflicts(t *testing.T) {
	existing := []scheduling.ExistingBookingSnapshot{
		snapshot(20, "204", false),
		snapshot(21, "204", true),
	}

	outcome := scheduling.ValidateAssignmentRequest(plumbingInput(true), existing)

	assert.True(t, outcome.Valid)
	assert.True(t, outcome.HasEmergencyConflicts)
	require.Len(t, outcome.AssignmentsToCancelForEmergency, 1)
	assert.Equal(t, uint(20), outcome.AssignmentsToCancelForEmergency[0].RequestID)
	assert.Len(t, outcome.Warnings, 2)
}

func TestValidateAssignmentIgnoresOwnRequest(t *testing.T) {
	in := plumbingInput(false)
	existing := []scheduling.ExistingBookingSnapshot{snapshot(in.RequestID, "204", false)}

	outcome := scheduling.ValidateAssignmentRequest(in, existing)
	assert.True(t, outcome.Valid, "reatribuição do próprio chamado não conflita consigo mesma")
}

func TestValidateAssignmentIgnoresInactiveStatuses(t *testing.T) {
	for _, status := range []scheduling.RequestStatus{
		scheduling.StatusDone,
		scheduling.StatusFailed,
		scheduling.StatusDeclined,
		scheduling.StatusClosed,
	} {
		snap := snapshot(20, "204", false)
		snap.Status = status

		outcome := scheduling.ValidateAssignmentRequest(plumbingInput(false), []scheduling.ExistingBookingSnapshot{snap})
		assert.True(t, outcome.Valid, "status %s", status)
	}
}

func TestProcessEmergencyOverride(t *testing.T) {
	toCancel := []scheduling.ExistingBookingSnapshot{
		snapshot(20, "204", false),
		snapshot(21, "204", false),
		snapshot(20, "204", false), // duplicado
	}

	ids := scheduling.ProcessEmergencyOverride(toCancel)
	assert.Equal(t, []uint{20, 21}, ids)
}

func TestProcessEmergencyOverrideEmpty(t *testing.T) {
	assert.Empty(t, scheduling.ProcessEmergencyOverride(nil))
}
