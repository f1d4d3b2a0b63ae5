package domain

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// BusinessSettings represents the scheduling configuration of a business.
// One row per business; when absent, defaults apply (see DefaultSettings).
type BusinessSettings struct {
	ID             int64
	BusinessID     int64
	WorkingDays    []int // дни недели 0 (воскресенье) .. 6 (суббота)
	WorkStart      types.TimeString
	WorkEnd        types.TimeString
	SlotGapMinutes int

	AllowCustomerReschedule bool
	RequireApproval         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWorkingDay returns true if the given weekday (0=Sunday..6=Saturday) is a
// working day for the business.
func (s *BusinessSettings) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// DefaultSettings returns the settings applied when a business has not
// configured its own. Defaults are resolved here and nowhere else.
func DefaultSettings(businessID int64) *BusinessSettings {
	return &BusinessSettings{
		BusinessID:              businessID,
		WorkingDays:             append([]int(nil), DefaultWorkingDays...),
		WorkStart:               DefaultWorkStart,
		WorkEnd:                 DefaultWorkEnd,
		SlotGapMinutes:          DefaultSlotGapMinutes,
		AllowCustomerReschedule: DefaultAllowCustomerReschedule,
		RequireApproval:         DefaultRequireApproval,
	}
}
