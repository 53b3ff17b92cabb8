package projection

import (
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

// Переиспользуем интерфейс из kvstore для работы с хранилищем
type Executor = kvstore.Executor

// Ключи документов проекций
const (
	UserBookingsKey     = "userBookings"
	ProviderRequestsKey = "providerRequests"
	UserAppointmentsKey = "userAppointments"
)
