package reschedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/dbmetrics"
	"github.com/Mahamundra/Kalbook-sub000/pkg/psqlbuilder"
)

// Repository репозиторий для работы с запросами на перенос записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов на перенос
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый запрос на перенос со статусом pending
func (r *Repository) Create(ctx context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reschedule_requests").
		Columns(
			"appointment_id",
			"requested_date",
			"requested_time",
			"status",
		).
		Values(
			req.AppointmentID,
			req.RequestedDate,
			req.RequestedTime,
			req.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает запрос на перенос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var req domain.RescheduleRequest
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&req.AppointmentID,
		&req.RequestedDate,
		&req.RequestedTime,
		&req.Status,
		&req.Message,
		&createdAt,
		&updatedAt,
		&req.ResolvedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// GetPendingByAppointmentID получает ожидающий запрос на перенос для записи
// На одну запись допускается не более одного pending-запроса
func (r *Repository) GetPendingByAppointmentID(ctx context.Context, appointmentID int64) (*domain.RescheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectColumns().
		Where(squirrel.Eq{
			"appointment_id": appointmentID,
			"status":         domain.ReschedulePending,
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	var req domain.RescheduleRequest
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&req.AppointmentID,
		&req.RequestedDate,
		&req.RequestedTime,
		&req.Status,
		&req.Message,
		&createdAt,
		&updatedAt,
		&req.ResolvedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByAppointmentID - scan request: %v", ErrScanRow, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// Resolve переводит запрос в терминальный статус (approved/rejected)
// Обновляет только pending-запросы: повторное разрешение невозможно
func (r *Repository) Resolve(ctx context.Context, id int64, status domain.RescheduleStatus, message *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reschedule_requests").
		Set("status", status).
		Set("message", message).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.ReschedulePending,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// selectColumns возвращает builder со стандартным набором колонок запроса
func selectColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"appointment_id",
		"requested_date",
		"requested_time",
		"status",
		"message",
		"created_at",
		"updated_at",
		"resolved_at",
	).From("reschedule_requests")
}
