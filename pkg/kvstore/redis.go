package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient создает клиента и проверяет соединение через PING
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrOperation, addr, err)
	}

	return client, nil
}

// RedisStore документы в Redis. Транзакции на WATCH/MULTI/EXEC:
// каждый прочитанный в транзакции ключ попадает под WATCH,
// и если он изменился до EXEC, Atomically возвращает ErrConflict.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load key=%s: %v", ErrOperation, key, err)
	}
	return v, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: Save key=%s: %v", ErrOperation, key, err)
	}
	return nil
}

func (s *RedisStore) Atomically(ctx context.Context, fn func(ctx context.Context, tx Executor) error) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		rtx := &redisTx{tx: tx, prefix: s.prefix, staged: make(map[string][]byte)}

		if err := fn(ctx, rtx); err != nil {
			return err
		}
		if len(rtx.staged) == 0 {
			return nil
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, key := range rtx.order {
				pipe.Set(ctx, s.prefix+key, rtx.staged[key], 0)
			}
			return nil
		})
		if err != nil && !errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("%w: Atomically - exec: %v", ErrOperation, err)
		}
		return err
	})

	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	return err
}

// Close закрывает клиента
func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisTx struct {
	tx     *redis.Tx
	prefix string
	staged map[string][]byte
	order  []string
}

func (t *redisTx) Load(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.staged[key]; ok {
		return clone(v), nil
	}

	if err := t.tx.Watch(ctx, t.prefix+key).Err(); err != nil {
		return nil, fmt.Errorf("%w: Load - watch key=%s: %v", ErrOperation, key, err)
	}

	v, err := t.tx.Get(ctx, t.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load key=%s: %v", ErrOperation, key, err)
	}
	return v, nil
}

func (t *redisTx) Save(_ context.Context, key string, value []byte) error {
	if _, ok := t.staged[key]; !ok {
		t.order = append(t.order, key)
	}
	t.staged[key] = clone(value)
	return nil
}
