package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/dbmetrics"
	"github.com/Mahamundra/Kalbook-sub000/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает настройки бизнеса
// Возвращает ErrSettingsNotFound, если бизнес настройки не сохранял:
// подстановку значений по умолчанию выполняет вызывающий слой
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"working_days",
		"work_start",
		"work_end",
		"slot_gap_minutes",
		"allow_customer_reschedule",
		"require_approval",
		"created_at",
		"updated_at",
	).
		From("business_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BusinessSettings
	var workingDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&workingDays,
		&s.WorkStart,
		&s.WorkEnd,
		&s.SlotGapMinutes,
		&s.AllowCustomerReschedule,
		&s.RequireApproval,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan settings: %v", ErrScanRow, err)
	}

	s.WorkingDays = make([]int, len(workingDays))
	for i, d := range workingDays {
		s.WorkingDays[i] = int(d)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert сохраняет настройки бизнеса, создавая строку при первом обращении
func (r *Repository) Upsert(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingDays := make(pq.Int64Array, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("business_settings").
		Columns(
			"business_id",
			"working_days",
			"work_start",
			"work_end",
			"slot_gap_minutes",
			"allow_customer_reschedule",
			"require_approval",
		).
		Values(
			s.BusinessID,
			workingDays,
			s.WorkStart,
			s.WorkEnd,
			s.SlotGapMinutes,
			s.AllowCustomerReschedule,
			s.RequireApproval,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			slot_gap_minutes = EXCLUDED.slot_gap_minutes,
			allow_customer_reschedule = EXCLUDED.allow_customer_reschedule,
			require_approval = EXCLUDED.require_approval,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
