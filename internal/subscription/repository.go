// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"fmt"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]Subscription, error)
	Append(ctx context.Context, userID string, sub *Subscription) error
	Update(ctx context.Context, userID string, sub *Subscription) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) collection(userID string) *store.Collection[Subscription] {
	return store.NewCollection[Subscription](
		r.store,
		store.KeySubscriptions(userID),
	)
}

func (r *repository) List(
	ctx context.Context,
	userID string,
) ([]Subscription, error) {
	return r.collection(userID).GetAll(ctx)
}

func (r *repository) Append(
	ctx context.Context,
	userID string,
	sub *Subscription,
) error {
	col := r.collection(userID)

	subs, err := col.GetAll(ctx)
	if err != nil {
		return err
	}

	return col.PutAll(ctx, append(subs, *sub))
}

func (r *repository) Update(
	ctx context.Context,
	userID string,
	sub *Subscription,
) error {
	col := r.collection(userID)

	subs, err := col.GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range subs {
		if subs[i].ID == sub.ID {
			subs[i] = *sub
			return col.PutAll(ctx, subs)
		}
	}

	return fmt.Errorf("update subscription %q: %w", sub.ID, core.ErrNotFound)
}
