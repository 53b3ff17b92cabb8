package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

// collection JSON-массив записей под одним ключом.
// Порядок массива = порядок вставки, как в исходных списках клиента.
type collection[T any] struct {
	store Executor
	key   string
	idOf  func(*T) string
}

func (c collection[T]) load(ctx context.Context) ([]*T, error) {
	executor := kvstore.GetExecutor(ctx, c.store)

	raw, err := executor.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLoad, c.key, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var items []*T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: key=%s: %v", ErrDecode, c.key, err)
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []*T) error {
	executor := kvstore.GetExecutor(ctx, c.store)

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: key=%s - encode: %v", ErrSave, c.key, err)
	}
	if err := executor.Save(ctx, c.key, raw); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrSave, c.key, err)
	}
	return nil
}

func (c collection[T]) get(ctx context.Context, id string) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if c.idOf(item) == id {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

// upsert заменяет запись с тем же id или добавляет в конец
func (c collection[T]) upsert(ctx context.Context, item *T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	id := c.idOf(item)
	replaced := false
	for i := range items {
		if c.idOf(items[i]) == id {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	return c.save(ctx, items)
}

func (c collection[T]) all(ctx context.Context) ([]*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}
