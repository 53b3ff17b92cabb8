package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

var (
	// ErrLoad возвращается при ошибке чтения расписания
	ErrLoad = errors.New("schedule.repository: failed to load")

	// ErrSave возвращается при ошибке записи расписания
	ErrSave = errors.New("schedule.repository: failed to save")

	// ErrDecode возвращается, когда сохраненный документ поврежден
	ErrDecode = errors.New("schedule.repository: failed to decode")
)

// Repository недельные шаблоны и даты недоступности провайдеров
type Repository struct {
	store kvstore.Executor
}

func NewRepository(store kvstore.Executor) *Repository {
	return &Repository{store: store}
}

func scheduleKey(providerID int64) string {
	return fmt.Sprintf("providerSchedule:%d", providerID)
}

func blackoutsKey(providerID int64) string {
	return fmt.Sprintf("providerBlackouts:%d", providerID)
}

// Get расписание провайдера, пустое если не сохранялось
func (r *Repository) Get(ctx context.Context, providerID int64) (domain.Schedule, error) {
	s := domain.Schedule{}
	if err := r.load(ctx, scheduleKey(providerID), &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save заменяет документ расписания целиком
func (r *Repository) Save(ctx context.Context, providerID int64, s domain.Schedule) error {
	if s == nil {
		s = domain.Schedule{}
	}
	return r.save(ctx, scheduleKey(providerID), s)
}

// Reset сохраняет пустое расписание
func (r *Repository) Reset(ctx context.Context, providerID int64) error {
	return r.save(ctx, scheduleKey(providerID), domain.Schedule{})
}

// GetBlackouts даты недоступности провайдера
func (r *Repository) GetBlackouts(ctx context.Context, providerID int64) ([]string, error) {
	var dates []string
	if err := r.load(ctx, blackoutsKey(providerID), &dates); err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

// SaveBlackouts заменяет список дат недоступности
func (r *Repository) SaveBlackouts(ctx context.Context, providerID int64, dates []string) error {
	if dates == nil {
		dates = []string{}
	}
	return r.save(ctx, blackoutsKey(providerID), dates)
}

func (r *Repository) load(ctx context.Context, key string, dst interface{}) error {
	executor := kvstore.GetExecutor(ctx, r.store)

	raw, err := executor.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrLoad, key, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrDecode, key, err)
	}
	return nil
}

func (r *Repository) save(ctx context.Context, key string, v interface{}) error {
	executor := kvstore.GetExecutor(ctx, r.store)

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: key=%s - encode: %v", ErrSave, key, err)
	}
	if err := executor.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrSave, key, err)
	}
	return nil
}
