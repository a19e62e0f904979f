// AngelaMos | 2026
// collection.go

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vayutech/vayu-backend/internal/core"
)

// Collection is a typed get-all/put-all view over a single store key.
// Feature repositories are built on it; an absent key reads as an empty
// collection.
type Collection[T any] struct {
	store Store
	key   string
}

func NewCollection[T any](s Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf(
			"decode collection %q: %w: %w",
			c.key,
			core.ErrStorage,
			err,
		)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (c *Collection[T]) PutAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf(
			"encode collection %q: %w: %w",
			c.key,
			core.ErrStorage,
			err,
		)
	}

	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("put collection %q: %w", c.key, err)
	}

	return nil
}
