package scheduling

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
)

// ===============================
// Slot Category
// ===============================

type SlotCategory string

const (
	SlotStandard        SlotCategory = "standard"
	SlotMorning         SlotCategory = "morning"
	SlotAfternoon       SlotCategory = "afternoon"
	SlotEvening         SlotCategory = "evening"
	SlotTenantPreferred SlotCategory = "tenant_preferred"
	SlotEmergency       SlotCategory = "emergency"
	SlotFlexible        SlotCategory = "flexible"
)

const (
	slotMinDuration = 30 * time.Minute
	slotMaxDuration = 8 * time.Hour

	businessHoursStart = 7  // 07:00
	businessHoursEnd   = 21 // 21:00
)

// ===============================
// TimeSlot
// ===============================

// TimeSlot é um valor imutável: data + janela de horário + categoria.
type TimeSlot struct {
	Date     time.Time    `json:"date"`
	Start    time.Time    `json:"start"`
	End      time.Time    `json:"end"`
	Category SlotCategory `json:"category"`
}

// NewTimeSlot monta e valida um slot. start/end no formato "15:04".
// Falha se a data já passou, start >= end ou duração fora de [30min, 8h].
func NewTimeSlot(date time.Time, startHM, endHM string, category SlotCategory, now time.Time) (TimeSlot, error) {
	day := truncateToDay(date)

	if day.Before(truncateToDay(now)) {
		return TimeSlot{}, httperr.ErrBusiness("slot_date_in_past")
	}

	start, err := atTimeOfDay(day, startHM)
	if err != nil {
		return TimeSlot{}, httperr.ErrBusiness("invalid_slot_time")
	}
	end, err := atTimeOfDay(day, endHM)
	if err != nil {
		return TimeSlot{}, httperr.ErrBusiness("invalid_slot_time")
	}

	if !start.Before(end) {
		return TimeSlot{}, httperr.ErrBusiness("invalid_slot_window")
	}

	d := end.Sub(start)
	if d < slotMinDuration || d > slotMaxDuration {
		return TimeSlot{}, httperr.ErrBusiness("invalid_slot_duration")
	}

	return TimeSlot{
		Date:     day,
		Start:    start,
		End:      end,
		Category: category,
	}, nil
}

// FromPreference mapeia a preferência textual do morador para uma
// janela canônica. Texto vazio ou não reconhecido cai em 08:00–17:00.
func FromPreference(date time.Time, preference string, now time.Time) (TimeSlot, error) {
	text := strings.ToLower(preference)

	start, end := "08:00", "17:00"
	switch {
	case strings.Contains(text, "morning"):
		start, end = "08:00", "12:00"
	case strings.Contains(text, "afternoon"):
		start, end = "12:00", "17:00"
	case strings.Contains(text, "evening"):
		start, end = "17:00", "20:00"
	case strings.Contains(text, "anytime"):
		// janela cheia
	}

	return NewTimeSlot(date, start, end, SlotTenantPreferred, now)
}

// StandardSlots retorna as três janelas canônicas do dia.
func StandardSlots(date time.Time, now time.Time) ([]TimeSlot, error) {
	windows := []struct {
		start, end string
		category   SlotCategory
	}{
		{"08:00", "12:00", SlotMorning},
		{"12:00", "17:00", SlotAfternoon},
		{"17:00", "20:00", SlotEvening},
	}

	slots := make([]TimeSlot, 0, len(windows))
	for _, w := range windows {
		slot, err := NewTimeSlot(date, w.start, w.end, w.category, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// OverlapsWith: mesmo dia e interseção de intervalos [start, end).
func (s TimeSlot) OverlapsWith(other TimeSlot) bool {
	if !sameDay(s.Date, other.Date) {
		return false
	}
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// IsWithinBusinessHours: janela inteiramente dentro de 07:00–21:00.
func (s TimeSlot) IsWithinBusinessHours() bool {
	open := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		businessHoursStart, 0, 0, 0, s.Date.Location())
	closing := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		businessHoursEnd, 0, 0, 0, s.Date.Location())

	return !s.Start.Before(open) && !s.End.After(closing)
}

func (s TimeSlot) IsSuitableForEmergency() bool {
	return s.Category == SlotEmergency || s.IsWithinBusinessHours()
}

// Midpoint: timestamp canônico quando se agenda uma janela, não um
// horário exato.
func (s TimeSlot) Midpoint() time.Time {
	return s.Start.Add(s.Duration() / 2)
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// ===============================
// Helpers
// ===============================

func atTimeOfDay(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
