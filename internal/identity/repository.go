// AngelaMos | 2026
// repository.go

package identity

import (
	"context"
	"fmt"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

type Repository interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	Insert(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error

	GetPending(ctx context.Context, phone string) (*PendingVerification, error)
	PutPending(ctx context.Context, pending PendingVerification) error
	DeletePending(ctx context.Context, phone string) error
}

type repository struct {
	users   *store.Collection[User]
	pending *store.Collection[PendingVerification]
}

func NewRepository(s store.Store) Repository {
	return &repository{
		users:   store.NewCollection[User](s, store.KeyUsers),
		pending: store.NewCollection[PendingVerification](s, store.KeyPendingVerifications),
	}
}

func (r *repository) ListUsers(ctx context.Context) ([]User, error) {
	return r.users.GetAll(ctx)
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	users, err := r.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}

	return nil, fmt.Errorf("find user %q: %w", id, core.ErrNotFound)
}

func (r *repository) FindByPhone(
	ctx context.Context,
	phone string,
) (*User, error) {
	users, err := r.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Phone == phone {
			return &users[i], nil
		}
	}

	return nil, fmt.Errorf("find user by phone: %w", core.ErrNotFound)
}

func (r *repository) Insert(ctx context.Context, user *User) error {
	users, err := r.users.GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].Phone == user.Phone {
			return fmt.Errorf("insert user: phone: %w", core.ErrDuplicateKey)
		}
	}

	return r.users.PutAll(ctx, append(users, *user))
}

func (r *repository) Update(ctx context.Context, user *User) error {
	users, err := r.users.GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.users.PutAll(ctx, users)
		}
	}

	return fmt.Errorf("update user %q: %w", user.ID, core.ErrNotFound)
}

func (r *repository) GetPending(
	ctx context.Context,
	phone string,
) (*PendingVerification, error) {
	pendings, err := r.pending.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range pendings {
		if pendings[i].Phone == phone {
			return &pendings[i], nil
		}
	}

	return nil, fmt.Errorf("pending verification: %w", core.ErrNotFound)
}

func (r *repository) PutPending(
	ctx context.Context,
	pending PendingVerification,
) error {
	pendings, err := r.pending.GetAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range pendings {
		if pendings[i].Phone == pending.Phone {
			pendings[i] = pending
			replaced = true
			break
		}
	}
	if !replaced {
		pendings = append(pendings, pending)
	}

	return r.pending.PutAll(ctx, pendings)
}

func (r *repository) DeletePending(ctx context.Context, phone string) error {
	pendings, err := r.pending.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := pendings[:0]
	for _, p := range pendings {
		if p.Phone != phone {
			kept = append(kept, p)
		}
	}

	return r.pending.PutAll(ctx, kept)
}
