package models

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// UpdateSettingsRequest запрос на обновление настроек бизнеса
type UpdateSettingsRequest struct {
	UserID     int64 `json:"userId"`
	BusinessID int64 `json:"businessId"`

	WorkingDays    []int  `json:"workingDays"`    // дни недели 0 (воскресенье) .. 6 (суббота)
	WorkStart      string `json:"workStart"`      // "09:00"
	WorkEnd        string `json:"workEnd"`        // "18:00"
	SlotGapMinutes int    `json:"slotGapMinutes"` // шаг сетки слотов

	AllowCustomerReschedule bool `json:"allowCustomerReschedule"`
	RequireApproval         bool `json:"requireApproval"`
}

// ToDomain конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomain() *domain.BusinessSettings {
	return &domain.BusinessSettings{
		BusinessID:              r.BusinessID,
		WorkingDays:             r.WorkingDays,
		WorkStart:               types.TimeString(r.WorkStart),
		WorkEnd:                 types.TimeString(r.WorkEnd),
		SlotGapMinutes:          r.SlotGapMinutes,
		AllowCustomerReschedule: r.AllowCustomerReschedule,
		RequireApproval:         r.RequireApproval,
	}
}

// SettingsResponse ответ с настройками бизнеса
type SettingsResponse struct {
	BusinessID     int64  `json:"businessId"`
	WorkingDays    []int  `json:"workingDays"`
	WorkStart      string `json:"workStart"`
	WorkEnd        string `json:"workEnd"`
	SlotGapMinutes int    `json:"slotGapMinutes"`

	AllowCustomerReschedule bool `json:"allowCustomerReschedule"`
	RequireApproval         bool `json:"requireApproval"`

	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BusinessSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		BusinessID:              s.BusinessID,
		WorkingDays:             s.WorkingDays,
		WorkStart:               s.WorkStart.String(),
		WorkEnd:                 s.WorkEnd.String(),
		SlotGapMinutes:          s.SlotGapMinutes,
		AllowCustomerReschedule: s.AllowCustomerReschedule,
		RequireApproval:         s.RequireApproval,
	}

	// Для настроек по умолчанию UpdatedAt отсутствует
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
