package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/dbmetrics"
	"github.com/m04kA/appointy-booking/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// Repository записи на прием в реляционной БД
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись на прием
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"provider_id",
			"service_type",
			"appointment_date",
			"appointment_time",
			"duration_minutes",
			"notes",
		).
		Values(
			a.UserID,
			a.ProviderID,
			a.ServiceType,
			a.AppointmentDate,
			a.AppointmentTime,
			a.DurationMinutes,
			a.Notes,
		).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Status, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// ListByUserID записи пользователя, новые даты первыми
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.user_id",
		"a.provider_id",
		"a.service_type",
		"a.appointment_date",
		"to_char(a.appointment_time, 'HH24:MI')",
		"a.duration_minutes",
		"a.notes",
		"a.status",
		"a.created_at",
		"u.name",
		"p.user_id",
		"up.name",
		"p.designation",
		"p.location",
	).
		From("appointments a").
		Join("users u ON a.user_id = u.id").
		Join("providers p ON a.provider_id = p.id").
		Join("users up ON p.user_id = up.id").
		Where(squirrel.Eq{"a.user_id": userID}).
		OrderBy("a.appointment_date DESC", "a.appointment_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		var d domain.AppointmentDetails
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.ProviderID,
			&d.ServiceType,
			&d.AppointmentDate,
			&d.AppointmentTime,
			&d.DurationMinutes,
			&d.Notes,
			&d.Status,
			&d.CreatedAt,
			&d.UserName,
			&d.ProviderUserID,
			&d.ProviderName,
			&d.Designation,
			&d.Location,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByUserID - scan appointment: %v", ErrScanRow, err)
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUserID - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}
