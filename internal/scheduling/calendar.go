package scheduling

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// Calendar derives the bookable slot grid of a business from its settings.
// Deterministic given (now, settings); no side effects.
type Calendar struct {
	WorkingDays    []int
	WorkStart      types.TimeString
	WorkEnd        types.TimeString
	SlotGapMinutes int
}

// CalendarFromSettings builds a Calendar from business settings.
func CalendarFromSettings(s *domain.BusinessSettings) Calendar {
	return Calendar{
		WorkingDays:    s.WorkingDays,
		WorkStart:      s.WorkStart,
		WorkEnd:        s.WorkEnd,
		SlotGapMinutes: s.SlotGapMinutes,
	}
}

// IsWorkingDay reports whether the business works on the given date.
func (c Calendar) IsWorkingDay(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range c.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// TimeSlots generates the slot grid from WorkStart (inclusive) to WorkEnd
// (exclusive) stepped by SlotGapMinutes. Returns an empty slice when the
// hours are unparsable, inverted or the gap is not positive — a misconfigured
// business simply has nothing bookable.
func (c Calendar) TimeSlots() []types.TimeString {
	slots := make([]types.TimeString, 0)

	if c.SlotGapMinutes <= 0 {
		return slots
	}
	if c.WorkStart.Validate() != nil || c.WorkEnd.Validate() != nil {
		return slots
	}
	if !c.WorkStart.IsBefore(c.WorkEnd) {
		return slots
	}

	current := c.WorkStart
	for current.IsBefore(c.WorkEnd) {
		slots = append(slots, current)

		next, err := current.AddMinutes(c.SlotGapMinutes)
		if err != nil {
			return slots
		}
		current = next
	}

	return slots
}

// FitsWorkingHours reports whether a booking of the given duration starting
// at start lies entirely within [WorkStart, WorkEnd]. A start inside working
// hours does not guarantee the whole duration fits.
func (c Calendar) FitsWorkingHours(start types.TimeString, durationMinutes int) bool {
	if start.IsBefore(c.WorkStart) {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(c.WorkEnd)
}

// AvailableDates returns the next horizonDays calendar dates starting from
// now (inclusive of today) filtered down to working days.
func (c Calendar) AvailableDates(now time.Time, horizonDays int) []time.Time {
	dates := make([]time.Time, 0, horizonDays)

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := 0; i < horizonDays; i++ {
		date := day.AddDate(0, 0, i)
		if c.IsWorkingDay(date) {
			dates = append(dates, date)
		}
	}

	return dates
}
