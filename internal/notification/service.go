// AngelaMos | 2026
// service.go

package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/store"
)

// UserRoster supplies the recipient count for a broadcast.
type UserRoster interface {
	ListUsers(ctx context.Context) ([]identity.User, error)
}

type Service struct {
	notifications *store.Collection[Notification]
	users         UserRoster
}

func NewService(s store.Store, users UserRoster) *Service {
	return &Service{
		notifications: store.NewCollection[Notification](s, store.KeyNotifications),
		users:         users,
	}
}

// Create records a broadcast. A future scheduledFor leaves it in the
// scheduled state; otherwise it is marked sent immediately. There is no
// delivery pipeline, the record itself is the broadcast.
func (s *Service) Create(
	ctx context.Context,
	title, message, kind, target string,
	scheduledFor *time.Time,
) (*Notification, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	items, err := s.notifications.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	n := Notification{
		ID:         uuid.New().String(),
		Title:      title,
		Message:    message,
		Type:       kind,
		Target:     target,
		Recipients: len(users),
	}

	if scheduledFor != nil {
		n.Status = StatusScheduled
		n.ScheduledFor = scheduledFor
	} else {
		now := time.Now().UTC()
		n.Status = StatusSent
		n.SentAt = &now
	}

	if err := s.notifications.PutAll(ctx, append(items, n)); err != nil {
		return nil, err
	}

	return &n, nil
}

// List returns broadcasts, newest first.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	items, err := s.notifications.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Notification, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}

	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	items, err := s.notifications.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for _, n := range items {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}

	if !found {
		return fmt.Errorf("notification %q: %w", id, core.ErrNotFound)
	}

	return s.notifications.PutAll(ctx, kept)
}
