package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduling "github.com/BruksfildServices01/maintenance-scheduler/internal/domain/scheduling"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestNewTimeSlotValidation(t *testing.T) {
	tests := map[string]struct {
		date    time.Time
		start   string
		end     string
		wantErr bool
	}{
		"Valid":            {day(1), "09:00", "12:00", false},
		"ValidToday":       {day(0), "14:00", "16:00", false},
		"PastDate":         {day(-1), "09:00", "12:00", true},
		"StartAfterEnd":    {day(1), "12:00", "09:00", true},
		"StartEqualsEnd":   {day(1), "09:00", "09:00", true},
		"TooShort":         {day(1), "09:00", "09:15", true},
		"ExactlyThirtyMin": {day(1), "09:00", "09:30", false},
		"TooLong":          {day(1), "08:00", "19:00", true},
		"ExactlyEightH":    {day(1), "08:00", "16:00", false},
		"BadFormat":        {day(1), "9am", "12:00", true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scheduling.NewTimeSlot(tc.date, tc.start, tc.end, scheduling.SlotStandard, testNow)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromPreference(t *testing.T) {
	tests := map[string]struct {
		preference string
		startHour  int
		endHour    int
	}{
		"Morning":      {"Morning (8 AM - 12 PM)", 8, 12},
		"Afternoon":    {"afternoon (12 pm - 5 pm)", 12, 17},
		"Evening":      {"Evening works best", 17, 20},
		"Anytime":      {"Anytime", 8, 17},
		"Unrecognized": {"whenever the moon is full", 8, 17},
		"Empty":        {"", 8, 17},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			slot, err := scheduling.FromPreference(day(1), tc.preference, testNow)
			require.NoError(t, err)

			assert.Equal(t, tc.startHour, slot.Start.Hour())
			assert.Equal(t, tc.endHour, slot.End.Hour())
			assert.Equal(t, scheduling.SlotTenantPreferred, slot.Category)
		})
	}
}

func TestStandardSlots(t *testing.T) {
	slots, err := scheduling.StandardSlots(day(1), testNow)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, scheduling.SlotMorning, slots[0].Category)
	assert.Equal(t, 8, slots[0].Start.Hour())
	assert.Equal(t, 12, slots[0].End.Hour())

	assert.Equal(t, scheduling.SlotAfternoon, slots[1].Category)
	assert.Equal(t, scheduling.SlotEvening, slots[2].Category)
	assert.Equal(t, 20, slots[2].End.Hour())
}

func TestTimeSlotOverlaps(t *testing.T) {
	morning, err := scheduling.NewTimeSlot(day(1), "08:00", "12:00", scheduling.SlotMorning, testNow)
	require.NoError(t, err)

	tests := map[string]struct {
		date     time.Time
		start    string
		end      string
		overlaps bool
	}{
		"SameWindow":      {day(1), "08:00", "12:00", true},
		"PartialOverlap":  {day(1), "11:00", "14:00", true},
		"TouchingEdges":   {day(1), "12:00", "15:00", false},
		"DifferentDay":    {day(2), "08:00", "12:00", false},
		"ContainedWithin": {day(1), "09:00", "10:00", true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			other, err := scheduling.NewTimeSlot(tc.date, tc.start, tc.end, scheduling.SlotStandard, testNow)
			require.NoError(t, err)

			assert.Equal(t, tc.overlaps, morning.OverlapsWith(other))
			assert.Equal(t, tc.overlaps, other.OverlapsWith(morning))
		})
	}
}

func TestBusinessHoursAndEmergency(t *testing.T) {
	inside, err := scheduling.NewTimeSlot(day(1), "07:00", "12:00", scheduling.SlotStandard, testNow)
	require.NoError(t, err)
	assert.True(t, inside.IsWithinBusinessHours())
	assert.True(t, inside.IsSuitableForEmergency())

	late, err := scheduling.NewTimeSlot(day(1), "18:00", "22:00", scheduling.SlotStandard, testNow)
	require.NoError(t, err)
	assert.False(t, late.IsWithinBusinessHours())
	assert.False(t, late.IsSuitableForEmergency())

	// categoria emergency passa mesmo fora do expediente
	lateEmergency, err := scheduling.NewTimeSlot(day(1), "18:00", "22:00", scheduling.SlotEmergency, testNow)
	require.NoError(t, err)
	assert.True(t, lateEmergency.IsSuitableForEmergency())
}

func TestMidpoint(t *testing.T) {
	slot, err := scheduling.NewTimeSlot(day(1), "08:00", "12:00", scheduling.SlotMorning, testNow)
	require.NoError(t, err)

	assert.Equal(t, 10, slot.Midpoint().Hour())
	assert.Equal(t, 4*time.Hour, slot.Duration())
}
