// AngelaMos | 2026
// service_test.go

package support

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/store"
)

type stubDirectory struct {
	users map[string]identity.User
}

func (d *stubDirectory) GetUser(
	_ context.Context, id string,
) (*identity.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", id, core.ErrNotFound)
	}
	return &u, nil
}

func newService() *Service {
	return NewService(store.NewMemory(), &stubDirectory{
		users: map[string]identity.User{
			"u1": {ID: "u1", Name: "Asha Rao", Email: "asha@example.com"},
		},
	})
}

func TestCreateSnapshotsUser(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	ticket, err := svc.Create(
		ctx, "u1", "Band not scanning", "Scanner shows nothing", "band", PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, "TKT-001", ticket.ID)
	assert.Equal(t, "Asha Rao", ticket.UserName)
	assert.Equal(t, "asha@example.com", ticket.UserEmail)
	assert.Equal(t, StatusOpen, ticket.Status)
	assert.Nil(t, ticket.ResolvedAt)
	assert.Empty(t, ticket.Messages)

	second, err := svc.Create(
		ctx, "u1", "Billing question", "Was I charged twice?", "billing", PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, "TKT-002", second.ID)
}

func TestCreateUnknownUser(t *testing.T) {
	svc := newService()

	_, err := svc.Create(
		context.Background(), "ghost", "s", "d", "other", PriorityLow)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Create(ctx, "u1", "A", "a", "band", PriorityHigh)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", "B", "b", "billing", PriorityLow)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, second.ID, StatusResolved)
	require.NoError(t, err)

	all, err := svc.List(ctx, "", "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	open, err := svc.List(ctx, "", StatusOpen, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "A", open[0].Subject)

	high, err := svc.List(ctx, "", "", PriorityHigh)
	require.NoError(t, err)
	require.Len(t, high, 1)

	none, err := svc.List(ctx, "other-user", "", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAdminReplyMovesOpenToInProgress(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	ticket, err := svc.Create(ctx, "u1", "A", "a", "band", PriorityHigh)
	require.NoError(t, err)

	replied, err := svc.Reply(ctx, ticket.ID, SenderAdmin, "Looking into it")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, replied.Status)
	require.Len(t, replied.Messages, 1)
	assert.Equal(t, SenderAdmin, replied.Messages[0].From)

	// Further replies leave the status alone.
	again, err := svc.Reply(ctx, ticket.ID, SenderUser, "Thanks")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, again.Status)
	assert.Len(t, again.Messages, 2)
}

func TestUserReplyDoesNotChangeStatus(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	ticket, err := svc.Create(ctx, "u1", "A", "a", "band", PriorityHigh)
	require.NoError(t, err)

	replied, err := svc.Reply(ctx, ticket.ID, SenderUser, "Still broken")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, replied.Status)
}

func TestSetStatusResolvedStampsTime(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	ticket, err := svc.Create(ctx, "u1", "A", "a", "band", PriorityHigh)
	require.NoError(t, err)

	resolved, err := svc.SetStatus(ctx, ticket.ID, StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	stamp := *resolved.ResolvedAt
	reopened, err := svc.SetStatus(ctx, ticket.ID, StatusClosed)
	require.NoError(t, err)
	require.NotNil(t, reopened.ResolvedAt)
	assert.Equal(t, stamp, *reopened.ResolvedAt, "first resolution time sticks")

	_, err = svc.SetStatus(ctx, ticket.ID, "escalated")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}
