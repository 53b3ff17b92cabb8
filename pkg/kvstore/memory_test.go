package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadMissing(t *testing.T) {
	s := NewMemoryStore()

	v, err := s.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryStore_SaveCopiesValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, s.Save(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestMemoryStore_AtomicallyCommitsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, "a", []byte("1")))

	boom := errors.New("boom")
	err := s.Atomically(ctx, func(ctx context.Context, tx Executor) error {
		require.NoError(t, tx.Save(ctx, "a", []byte("2")))
		require.NoError(t, tx.Save(ctx, "b", []byte("2")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, _ := s.Load(ctx, "a")
	b, _ := s.Load(ctx, "b")
	assert.Equal(t, []byte("1"), a)
	assert.Nil(t, b)

	err = s.Atomically(ctx, func(ctx context.Context, tx Executor) error {
		// staged значение видно внутри транзакции
		require.NoError(t, tx.Save(ctx, "a", []byte("3")))
		v, err := tx.Load(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("3"), v)
		return tx.Save(ctx, "b", []byte("3"))
	})
	require.NoError(t, err)

	a, _ = s.Load(ctx, "a")
	b, _ = s.Load(ctx, "b")
	assert.Equal(t, []byte("3"), a)
	assert.Equal(t, []byte("3"), b)
}

func TestTransactionManager_NestedDoJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	tm := NewTransactionManager(s)

	err := tm.Do(ctx, func(ctx context.Context) error {
		require.True(t, IsInTransaction(ctx))
		if err := GetExecutor(ctx, s).Save(ctx, "outer", []byte("1")); err != nil {
			return err
		}
		return tm.Do(ctx, func(ctx context.Context) error {
			return GetExecutor(ctx, s).Save(ctx, "inner", []byte("1"))
		})
	})
	require.NoError(t, err)

	inner, _ := s.Load(ctx, "inner")
	outer, _ := s.Load(ctx, "outer")
	assert.Equal(t, []byte("1"), inner)
	assert.Equal(t, []byte("1"), outer)
}

func TestGetExecutor_WithoutTx(t *testing.T) {
	s := NewMemoryStore()
	assert.Same(t, s, GetExecutor(context.Background(), s))
	assert.False(t, IsInTransaction(context.Background()))
}
