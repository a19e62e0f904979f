// AngelaMos | 2026
// resolver_test.go

package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/store"
	"github.com/vayutech/vayu-backend/internal/subscription"
)

type fixture struct {
	resolver *Service
	family   *family.Service
	bands    *band.Service
	userID   string
	memberID string
	bandID   string
	bui      string
}

// Full stack over the memory store: provision, register, link, resolve.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st := store.NewMemory()
	familySvc := family.NewService(family.NewRepository(st))
	subSvc := subscription.NewService(subscription.NewRepository(st), familySvc)
	bandSvc := band.NewService(band.NewRepository(st), familySvc, subSvc)
	familySvc.SetBandUnlinker(bandSvc)

	userID := "user-1"

	_, err := subSvc.Purchase(ctx, userID, "individual")
	require.NoError(t, err)

	member, err := familySvc.AddMember(ctx, userID, family.AddMemberRequest{
		FullName:         "Asha Rao",
		Age:              34,
		BloodGroup:       "O+",
		Allergies:        "Peanuts",
		MedicalCondition: "Asthma",
		HomeAddress:      "12 Lake View Road, Pune",
		Relationship:     "self",
		EmergencyContacts: []family.EmergencyContactInput{
			{Name: "Ravi Rao", Phone: "9876543210", Relation: "spouse"},
		},
	})
	require.NoError(t, err)

	_, err = bandSvc.AddToInventory(ctx, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	registered, err := bandSvc.Register(ctx, userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = bandSvc.Link(ctx, userID, registered.ID, member.ID)
	require.NoError(t, err)

	return &fixture{
		resolver: NewService(bandSvc, familySvc),
		family:   familySvc,
		bands:    bandSvc,
		userID:   userID,
		memberID: member.ID,
		bandID:   registered.ID,
		bui:      "BUI-AAA1",
	}
}

func TestResolveReturnsOnlyVisibleFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	profile, err := f.resolver.Resolve(ctx, f.bui)
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", profile["fullName"])
	assert.Equal(t, 34, profile["age"])
	assert.Equal(t, "O+", profile["bloodGroup"])
	assert.Equal(t, "self", profile["relationship"])
	assert.Contains(t, profile, "emergencyContacts")

	// Private by default.
	assert.NotContains(t, profile, "allergies")
	assert.NotContains(t, profile, "medicalCondition")
	assert.NotContains(t, profile, "homeAddress")
}

func TestResolveFollowsVisibilityChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.family.SetVisibility(ctx, f.userID, f.memberID, map[string]bool{
		"allergies": true,
		"fullName":  false,
	})
	require.NoError(t, err)

	profile, err := f.resolver.Resolve(ctx, f.bui)
	require.NoError(t, err)

	assert.Equal(t, "Peanuts", profile["allergies"])
	assert.NotContains(t, profile, "fullName")
}

func TestResolveMissesReadIdentically(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown identifier", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.resolver.Resolve(ctx, "BUI-NOPE")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("serial is not resolvable", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.resolver.Resolve(ctx, "VB-1001")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("unlinked band", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.bands.Unlink(ctx, f.userID, f.bandID)
		require.NoError(t, err)

		_, err = f.resolver.Resolve(ctx, f.bui)
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("everything hidden", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.family.SetVisibility(ctx, f.userID, f.memberID, map[string]bool{
			"fullName":          false,
			"age":               false,
			"bloodGroup":        false,
			"emergencyContacts": false,
			"relationship":      false,
		})
		require.NoError(t, err)

		_, err = f.resolver.Resolve(ctx, f.bui)
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}
