package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/dbmetrics"
	"github.com/m04kA/appointy-booking/pkg/psqlbuilder"
)

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider.repository: provider not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("provider.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("provider.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("provider.repository: failed to scan row")
)

// Repository репозиторий провайдеров
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль провайдера для существующего пользователя
func (r *Repository) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services := p.ServicesOffered
	if services == nil {
		services = []string{}
	}

	query, args, err := psqlbuilder.Insert("providers").
		Columns(
			"user_id",
			"service_type",
			"designation",
			"location",
			"bio",
			"experience_years",
			"hourly_rate",
			"available",
			"services_offered",
		).
		Values(
			p.UserID,
			p.ServiceType,
			p.Designation,
			p.Location,
			p.Bio,
			p.ExperienceYears,
			p.HourlyRate,
			p.Available,
			pq.Array(services),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// selectProviders базовый запрос: провайдер + пользователь + агрегаты отзывов
func selectProviders() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"p.id",
		"p.user_id",
		"u.name",
		"u.email",
		"u.phone",
		"p.service_type",
		"p.designation",
		"p.location",
		"p.bio",
		"p.experience_years",
		"p.hourly_rate",
		"p.is_verified",
		"p.available",
		"p.services_offered",
		"COALESCE(AVG(r.rating), 0)",
		"COUNT(r.id)",
		"p.created_at",
	).
		From("providers p").
		Join("users u ON p.user_id = u.id").
		LeftJoin("reviews r ON p.id = r.provider_id").
		GroupBy("p.id", "u.id")
}

// GetByID получает провайдера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"p.id": id})
}

// GetByUserID получает профиль провайдера по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"p.user_id": userID})
}

// ListByServiceType провайдеры категории с рейтингом и числом отзывов
func (r *Repository) ListByServiceType(ctx context.Context, serviceType string) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectProviders().
		Where(squirrel.Eq{"p.service_type": serviceType}).
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceType - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByServiceType - scan provider: %v", ErrScanRow, err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByServiceType - rows iteration: %v", ErrScanRow, err)
	}

	return providers, nil
}

// SetAvailable включает или выключает прием заявок
func (r *Repository) SetAvailable(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("providers").
		Set("available", available).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetAvailable - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailable - execute update: %v", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectProviders().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanProvider(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %v", ErrScanRow, op, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(s scanner) (*domain.Provider, error) {
	var (
		p        domain.Provider
		phone    sql.NullString
		services pq.StringArray
	)
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&phone,
		&p.ServiceType,
		&p.Designation,
		&p.Location,
		&p.Bio,
		&p.ExperienceYears,
		&p.HourlyRate,
		&p.IsVerified,
		&p.Available,
		&services,
		&p.AverageRating,
		&p.ReviewCount,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Phone = phone.String
	p.ServicesOffered = []string(services)
	return &p, nil
}
