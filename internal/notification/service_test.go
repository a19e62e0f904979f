// AngelaMos | 2026
// service_test.go

package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/store"
)

type stubRoster struct {
	count int
}

func (r *stubRoster) ListUsers(context.Context) ([]identity.User, error) {
	return make([]identity.User, r.count), nil
}

func TestCreateSendsImmediately(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), &stubRoster{count: 7})

	n, err := svc.Create(ctx, "Welcome", "New band colors", "update", "all", nil)
	require.NoError(t, err)

	assert.Equal(t, StatusSent, n.Status)
	require.NotNil(t, n.SentAt)
	assert.Nil(t, n.ScheduledFor)
	assert.Equal(t, 7, n.Recipients)
	assert.Equal(t, 0, n.Opened)
}

func TestCreateSchedulesForLater(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), &stubRoster{count: 3})

	when := time.Now().Add(48 * time.Hour).UTC()
	n, err := svc.Create(ctx, "Maintenance", "Downtime Sunday", "alert", "all", &when)
	require.NoError(t, err)

	assert.Equal(t, StatusScheduled, n.Status)
	assert.Nil(t, n.SentAt)
	require.NotNil(t, n.ScheduledFor)
	assert.Equal(t, when, *n.ScheduledFor)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), &stubRoster{})

	first, err := svc.Create(ctx, "First", "m", "update", "all", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Second", "m", "update", "all", nil)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), &stubRoster{})

	n, err := svc.Create(ctx, "Gone soon", "m", "update", "all", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, n.ID))
	require.ErrorIs(t, svc.Delete(ctx, n.ID), core.ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
