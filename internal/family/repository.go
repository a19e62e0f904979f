// AngelaMos | 2026
// repository.go

package family

import (
	"context"
	"fmt"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]FamilyMember, error)
	Find(ctx context.Context, userID, memberID string) (*FamilyMember, error)
	Append(ctx context.Context, userID string, member *FamilyMember) error
	Update(ctx context.Context, userID string, member *FamilyMember) error
	Delete(ctx context.Context, userID, memberID string) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) collection(userID string) *store.Collection[FamilyMember] {
	return store.NewCollection[FamilyMember](r.store, store.KeyMembers(userID))
}

func (r *repository) List(
	ctx context.Context,
	userID string,
) ([]FamilyMember, error) {
	return r.collection(userID).GetAll(ctx)
}

func (r *repository) Find(
	ctx context.Context,
	userID, memberID string,
) (*FamilyMember, error) {
	members, err := r.collection(userID).GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range members {
		if members[i].ID == memberID {
			return &members[i], nil
		}
	}

	return nil, fmt.Errorf("find member %q: %w", memberID, core.ErrNotFound)
}

func (r *repository) Append(
	ctx context.Context,
	userID string,
	member *FamilyMember,
) error {
	col := r.collection(userID)

	members, err := col.GetAll(ctx)
	if err != nil {
		return err
	}

	return col.PutAll(ctx, append(members, *member))
}

func (r *repository) Update(
	ctx context.Context,
	userID string,
	member *FamilyMember,
) error {
	col := r.collection(userID)

	members, err := col.GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range members {
		if members[i].ID == member.ID {
			members[i] = *member
			return col.PutAll(ctx, members)
		}
	}

	return fmt.Errorf("update member %q: %w", member.ID, core.ErrNotFound)
}

func (r *repository) Delete(
	ctx context.Context,
	userID, memberID string,
) error {
	col := r.collection(userID)

	members, err := col.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := members[:0]
	found := false
	for _, m := range members {
		if m.ID == memberID {
			found = true
			continue
		}
		kept = append(kept, m)
	}

	if !found {
		return fmt.Errorf("delete member %q: %w", memberID, core.ErrNotFound)
	}

	return col.PutAll(ctx, kept)
}
