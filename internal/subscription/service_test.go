// AngelaMos | 2026
// service_test.go

package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

type stubLinkCounter struct {
	linked int
}

func (s *stubLinkCounter) LinkedMemberCount(
	context.Context, string,
) (int, error) {
	return s.linked, nil
}

func newService(linked int) (*Service, *stubLinkCounter) {
	counter := &stubLinkCounter{linked: linked}
	svc := NewService(NewRepository(store.NewMemory()), counter)
	return svc, counter
}

func TestPurchaseSetsPlanTerms(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(0)

	sub, err := svc.Purchase(ctx, "user-1", "family")
	require.NoError(t, err)

	assert.Equal(t, "family", sub.Plan)
	assert.Equal(t, "Family", sub.PlanName)
	assert.Equal(t, 4, sub.MemberCount)
	assert.Equal(t, 1499, sub.Price)
	assert.Equal(t, StatusActive, sub.Status)
	assert.Equal(t, sub.StartDate.Add(365*24*time.Hour), sub.EndDate)
}

func TestPurchaseUnknownPlan(t *testing.T) {
	svc, _ := newService(0)

	_, err := svc.Purchase(context.Background(), "user-1", "platinum")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSlotsSumActivePlans(t *testing.T) {
	ctx := context.Background()
	svc, counter := newService(0)

	_, err := svc.Purchase(ctx, "user-1", "individual")
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, "user-1", "family")
	require.NoError(t, err)

	counter.linked = 2

	slots, err := svc.Slots(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, slots.Total)
	assert.Equal(t, 2, slots.Used)
	assert.Equal(t, 3, slots.Available)
}

// Cancelling removes the plan's slots immediately but leaves existing
// links in place, so available can go negative until links are redone.
func TestCancelDoesNotReclaimLinks(t *testing.T) {
	ctx := context.Background()
	svc, counter := newService(0)

	sub, err := svc.Purchase(ctx, "user-1", "family")
	require.NoError(t, err)

	counter.linked = 3

	cancelled, err := svc.Cancel(ctx, "user-1", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	slots, err := svc.Slots(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, slots.Total)
	assert.Equal(t, 3, slots.Used)
	assert.Equal(t, -3, slots.Available)
}

func TestCancelUnknownSubscription(t *testing.T) {
	svc, _ := newService(0)

	_, err := svc.Cancel(context.Background(), "user-1", "nope")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestDerivedStatus(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		sub  Subscription
		want string
	}{
		{
			"active until end date",
			Subscription{Status: StatusActive, EndDate: now.Add(time.Hour)},
			StatusActive,
		},
		{
			"expired after end date",
			Subscription{Status: StatusActive, EndDate: now.Add(-time.Hour)},
			StatusExpired,
		},
		{
			"cancelled is terminal",
			Subscription{Status: StatusCancelled, EndDate: now.Add(time.Hour)},
			StatusCancelled,
		},
		{
			"cancelled stays cancelled past end date",
			Subscription{Status: StatusCancelled, EndDate: now.Add(-time.Hour)},
			StatusCancelled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sub.DerivedStatus(now))
		})
	}
}

func TestListRecomputesStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(store.NewMemory())
	svc := NewService(repo, &stubLinkCounter{})

	now := time.Now()
	require.NoError(t, repo.Append(ctx, "user-1", &Subscription{
		ID:        "sub-old",
		Plan:      "individual",
		Status:    StatusActive,
		StartDate: now.AddDate(-2, 0, 0),
		EndDate:   now.AddDate(-1, 0, 0),
	}))

	subs, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, StatusExpired, subs[0].Status)
}
