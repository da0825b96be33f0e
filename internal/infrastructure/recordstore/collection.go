package recordstore

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

// Collection is a typed view over one key of a Store.
type Collection[T any] struct {
	store *Store
	key   string
}

func NewCollection[T any](store *Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// All decodes every record in stored order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raw, err := c.store.LoadAll(ctx, c.key)
	if err != nil {
		return nil, err
	}
	return c.decode(raw)
}

// Replace overwrites the collection with items.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	raw, err := c.encode(items)
	if err != nil {
		return err
	}
	return c.store.SaveAll(ctx, c.key, raw)
}

// Mutate runs fn over the current items and stores what it returns, all
// under the collection's lock.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return c.store.Update(ctx, c.key, func(raw []json.RawMessage) ([]json.RawMessage, error) {
		items, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		out, err := fn(items)
		if err != nil {
			return nil, err
		}
		return c.encode(out)
	})
}

func (c *Collection[T]) decode(raw []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(raw))
	for i, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, apperrors.NewCorruptDataError(c.key, fmt.Errorf("record %d: %w", i, err))
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Collection[T]) encode(items []T) ([]json.RawMessage, error) {
	raw := make([]json.RawMessage, 0, len(items))
	for i := range items {
		data, err := json.Marshal(items[i])
		if err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to encode record %d of %q", i, c.key), err)
		}
		raw = append(raw, data)
	}
	return raw, nil
}
