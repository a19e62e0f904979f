// AngelaMos | 2026
// service.go

package support

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/store"
)

// UserDirectory resolves the ticket creator's display name and email.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*identity.User, error)
}

type Service struct {
	tickets *store.Collection[Ticket]
	users   UserDirectory
}

func NewService(s store.Store, users UserDirectory) *Service {
	return &Service{
		tickets: store.NewCollection[Ticket](s, store.KeySupportTickets),
		users:   users,
	}
}

// Create opens a new ticket on behalf of userID. Name and email are
// snapshotted from the user record so later profile edits don't rewrite
// ticket history.
func (s *Service) Create(
	ctx context.Context,
	userID, subject, description, category, priority string,
) (*Ticket, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	tickets, err := s.tickets.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ticket := Ticket{
		ID:          fmt.Sprintf("TKT-%03d", len(tickets)+1),
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Subject:     subject,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      StatusOpen,
		CreatedAt:   time.Now().UTC(),
		Messages:    []Message{},
	}

	if err := s.tickets.PutAll(ctx, append(tickets, ticket)); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// List returns tickets, newest first, optionally filtered by status
// and priority ("" means no filter). Admins see every ticket; a user
// list is obtained by passing their ID as userID.
func (s *Service) List(
	ctx context.Context,
	userID, status, priority string,
) ([]Ticket, error) {
	tickets, err := s.tickets.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Ticket, 0, len(tickets))
	for i := len(tickets) - 1; i >= 0; i-- {
		t := tickets[i]
		if userID != "" && t.UserID != userID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		out = append(out, t)
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Ticket, error) {
	tickets, err := s.tickets.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}

	return nil, fmt.Errorf("ticket %q: %w", id, core.ErrNotFound)
}

// Reply appends a message to the ticket thread. The first admin reply
// moves an open ticket to in_progress.
func (s *Service) Reply(
	ctx context.Context,
	id, from, message string,
) (*Ticket, error) {
	if from != SenderUser && from != SenderAdmin {
		return nil, fmt.Errorf(
			"reply: invalid sender %q: %w", from, core.ErrInvalidInput)
	}

	return s.mutate(ctx, id, func(t *Ticket) {
		t.Messages = append(t.Messages, Message{
			ID:        uuid.New().String(),
			From:      from,
			Message:   message,
			Timestamp: time.Now().UTC(),
		})
		if from == SenderAdmin && t.Status == StatusOpen {
			t.Status = StatusInProgress
		}
	})
}

// SetStatus transitions the ticket; moving to resolved stamps
// resolvedAt.
func (s *Service) SetStatus(
	ctx context.Context,
	id, status string,
) (*Ticket, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"set status: invalid status %q: %w", status, core.ErrInvalidInput)
	}

	return s.mutate(ctx, id, func(t *Ticket) {
		t.Status = status
		if status == StatusResolved && t.ResolvedAt == nil {
			now := time.Now().UTC()
			t.ResolvedAt = &now
		}
	})
}

func (s *Service) mutate(
	ctx context.Context,
	id string,
	fn func(*Ticket),
) (*Ticket, error) {
	tickets, err := s.tickets.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}

		fn(&tickets[i])
		if err := s.tickets.PutAll(ctx, tickets); err != nil {
			return nil, err
		}
		return &tickets[i], nil
	}

	return nil, fmt.Errorf("ticket %q: %w", id, core.ErrNotFound)
}
