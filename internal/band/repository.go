// AngelaMos | 2026
// repository.go

package band

import (
	"context"

	"github.com/vayutech/vayu-backend/internal/store"
)

type Repository interface {
	ListBands(ctx context.Context, userID string) ([]Band, error)
	PutBands(ctx context.Context, userID string, bands []Band) error

	ListGlobal(ctx context.Context) ([]RegisteredBand, error)
	PutGlobal(ctx context.Context, bands []RegisteredBand) error

	ListInventory(ctx context.Context) ([]InventoryBand, error)
	PutInventory(ctx context.Context, bands []InventoryBand) error
}

type repository struct {
	store     store.Store
	global    *store.Collection[RegisteredBand]
	inventory *store.Collection[InventoryBand]
}

func NewRepository(s store.Store) Repository {
	return &repository{
		store:     s,
		global:    store.NewCollection[RegisteredBand](s, store.KeyAllRegisteredBands),
		inventory: store.NewCollection[InventoryBand](s, store.KeyMasterBands),
	}
}

func (r *repository) bands(userID string) *store.Collection[Band] {
	return store.NewCollection[Band](r.store, store.KeyBands(userID))
}

func (r *repository) ListBands(
	ctx context.Context,
	userID string,
) ([]Band, error) {
	return r.bands(userID).GetAll(ctx)
}

func (r *repository) PutBands(
	ctx context.Context,
	userID string,
	bands []Band,
) error {
	return r.bands(userID).PutAll(ctx, bands)
}

func (r *repository) ListGlobal(ctx context.Context) ([]RegisteredBand, error) {
	return r.global.GetAll(ctx)
}

func (r *repository) PutGlobal(
	ctx context.Context,
	bands []RegisteredBand,
) error {
	return r.global.PutAll(ctx, bands)
}

func (r *repository) ListInventory(
	ctx context.Context,
) ([]InventoryBand, error) {
	return r.inventory.GetAll(ctx)
}

func (r *repository) PutInventory(
	ctx context.Context,
	bands []InventoryBand,
) error {
	return r.inventory.PutAll(ctx, bands)
}
