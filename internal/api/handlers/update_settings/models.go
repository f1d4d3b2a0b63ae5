package update_settings

import (
	"github.com/Mahamundra/Kalbook-sub000/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	WorkingDays    []int  `json:"workingDays"`
	WorkStart      string `json:"workStart"`
	WorkEnd        string `json:"workEnd"`
	SlotGapMinutes int    `json:"slotGapMinutes"`

	AllowCustomerReschedule bool `json:"allowCustomerReschedule"`
	RequireApproval         bool `json:"requireApproval"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID, businessID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  userID,
		BusinessID:              businessID,
		WorkingDays:             r.WorkingDays,
		WorkStart:               r.WorkStart,
		WorkEnd:                 r.WorkEnd,
		SlotGapMinutes:          r.SlotGapMinutes,
		AllowCustomerReschedule: r.AllowCustomerReschedule,
		RequireApproval:         r.RequireApproval,
	}
}
