package domain

import "github.com/Mahamundra/Kalbook-sub000/pkg/types"

// Default configuration values
const (
	DefaultSlotGapMinutes          = 30
	DefaultHorizonDays             = 30
	DefaultAllowCustomerReschedule = true
	DefaultRequireApproval         = true

	DefaultWorkStart types.TimeString = "09:00"
	DefaultWorkEnd   types.TimeString = "18:00"
)

// DefaultWorkingDays понедельник-суббота
var DefaultWorkingDays = []int{1, 2, 3, 4, 5, 6}

// LeadTimeMinutes is the minimum notice for same-day bookings: slots starting
// earlier than now+15m are not bookable today. Future days are unrestricted.
const LeadTimeMinutes = 15

// Business validation constants
const (
	MinSlotGapMinutes = 5
	MaxSlotGapMinutes = 480 // 8 hours
	MaxNotesLength    = 500
	MaxMessageLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
