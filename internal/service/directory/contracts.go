package directory

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// ServiceRepository справочник категорий услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
}

// ProviderRepository каталог провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	ListByServiceType(ctx context.Context, serviceType string) ([]*domain.Provider, error)
	SetAvailable(ctx context.Context, id int64, available bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
