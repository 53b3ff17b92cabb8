package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrOperation ошибка обращения к хранилищу (сеть, сериализация на стороне драйвера)
	ErrOperation = errors.New("kvstore: operation failed")

	// ErrConflict данные изменились конкурентно во время транзакции
	ErrConflict = errors.New("kvstore: concurrent modification")
)

// Executor операции чтения и записи документа по ключу.
// Load возвращает nil, nil для отсутствующего ключа.
type Executor interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Store хранилище документов с атомарным read-modify-write.
// Внутри Atomically все записи применяются вместе или не применяются вовсе.
type Store interface {
	Executor
	Atomically(ctx context.Context, fn func(ctx context.Context, tx Executor) error) error
}

type txKey struct{}

// WithTx кладет транзакцию хранилища в контекст
func WithTx(ctx context.Context, tx Executor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе store
func GetExecutor(ctx context.Context, store Executor) Executor {
	if tx, ok := ctx.Value(txKey{}).(Executor); ok {
		return tx
	}
	return store
}

// IsInTransaction true, если в контексте уже есть транзакция хранилища
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(Executor)
	return ok
}

// TransactionManager выполняет функцию в транзакции хранилища.
// Репозитории получают транзакцию через GetExecutor.
type TransactionManager struct {
	store Store
}

func NewTransactionManager(store Store) *TransactionManager {
	return &TransactionManager{store: store}
}

// Do выполняет fn атомарно. Вложенный вызов присоединяется к внешней транзакции.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if IsInTransaction(ctx) {
		return fn(ctx)
	}
	return m.store.Atomically(ctx, func(ctx context.Context, tx Executor) error {
		return fn(WithTx(ctx, tx))
	})
}
