package kvstore

import (
	"context"
	"time"

	"github.com/m04kA/appointy-booking/pkg/metrics"
)

// InstrumentedStore пишет длительность операций хранилища в prometheus
type InstrumentedStore struct {
	store   Store
	metrics *metrics.Metrics
}

func WithMetrics(store Store, m *metrics.Metrics) *InstrumentedStore {
	return &InstrumentedStore{store: store, metrics: m}
}

func (s *InstrumentedStore) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := s.store.Load(ctx, key)
	s.metrics.ObserveKV("load", err, time.Since(start))
	return v, err
}

func (s *InstrumentedStore) Save(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.store.Save(ctx, key, value)
	s.metrics.ObserveKV("save", err, time.Since(start))
	return err
}

func (s *InstrumentedStore) Atomically(ctx context.Context, fn func(ctx context.Context, tx Executor) error) error {
	start := time.Now()
	err := s.store.Atomically(ctx, fn)
	s.metrics.ObserveKV("atomically", err, time.Since(start))
	return err
}
