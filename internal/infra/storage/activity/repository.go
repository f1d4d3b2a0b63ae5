package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/dbmetrics"
	"github.com/Mahamundra/Kalbook-sub000/pkg/psqlbuilder"
)

// Repository репозиторий журнала активности (append-only)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала активности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет событие в журнал
// ID генерируется здесь, если не задан вызывающим
func (r *Repository) Create(ctx context.Context, event *domain.ActivityEvent) (*domain.ActivityEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	details, err := json.Marshal(event.Details)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrMarshalDetails, err)
	}

	query, args, err := psqlbuilder.Insert("activity_log").
		Columns(
			"id",
			"business_id",
			"appointment_id",
			"event_type",
			"actor_id",
			"details",
		).
		Values(
			event.ID,
			event.BusinessID,
			event.AppointmentID,
			event.EventType,
			event.ActorID,
			details,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time

	return event, nil
}

// GetByBusinessID получает события бизнеса, сначала новые
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64, limit uint64) ([]*domain.ActivityEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"business_id",
		"appointment_id",
		"event_type",
		"actor_id",
		"details",
		"created_at",
	).
		From("activity_log").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.ActivityEvent, 0)

	for rows.Next() {
		var event domain.ActivityEvent
		var details []byte
		var createdAt sql.NullTime

		err := rows.Scan(
			&event.ID,
			&event.BusinessID,
			&event.AppointmentID,
			&event.EventType,
			&event.ActorID,
			&details,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByBusinessID - scan row: %v", ErrScanRow, err)
		}

		if len(details) > 0 {
			if err := json.Unmarshal(details, &event.Details); err != nil {
				return nil, fmt.Errorf("%w: GetByBusinessID - unmarshal details: %v", ErrScanRow, err)
			}
		}

		event.CreatedAt = createdAt.Time

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
