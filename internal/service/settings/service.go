package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	"github.com/Mahamundra/Kalbook-sub000/internal/service/settings/models"
)

// Service сервис для работы с настройками расписания бизнеса
type Service struct {
	settingsRepo  SettingsRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:  settingsRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Get получает настройки расписания бизнеса
// Публичный метод: клиенты видят рабочие часы при выборе слота.
// Если бизнес настройки не сохранял - возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%d", businessID)

	settings, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no settings stored for business=%d, using defaults", businessID)
			return models.FromDomainSettings(domain.DefaultSettings(businessID)), nil
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings for business=%d", businessID)
	return models.FromDomainSettings(settings), nil
}

// Update сохраняет настройки расписания бизнеса
// Доступно только менеджерам бизнеса
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%d by user=%d", req.BusinessID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Валидация входных данных
	settings := req.ToDomain()
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: invalid settings for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for business=%d", req.BusinessID)
	return models.FromDomainSettings(updated), nil
}

// validateSettings валидирует настройки перед сохранением
func validateSettings(s *domain.BusinessSettings) error {
	if len(s.WorkingDays) == 0 {
		return fmt.Errorf("%w: workingDays must not be empty", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: working day %d out of range 0..6", ErrInvalidInput, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate working day %d", ErrInvalidInput, d)
		}
		seen[d] = true
	}

	if err := s.WorkStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid workStart: %v", ErrInvalidInput, err)
	}
	if err := s.WorkEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid workEnd: %v", ErrInvalidInput, err)
	}
	if !s.WorkStart.IsBefore(s.WorkEnd) {
		return fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
	}

	if s.SlotGapMinutes < domain.MinSlotGapMinutes || s.SlotGapMinutes > domain.MaxSlotGapMinutes {
		return fmt.Errorf("%w: slotGapMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGapMinutes, domain.MaxSlotGapMinutes)
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.catalogClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	if business.IsManager(userID) {
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
	return ErrAccessDenied
}
