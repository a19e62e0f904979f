// AngelaMos | 2026
// service_test.go

package band

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/store"
	"github.com/vayutech/vayu-backend/internal/subscription"
)

type testEnv struct {
	bands    *Service
	family   *family.Service
	subs     *subscription.Service
	userID   string
	memberID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemory()
	familySvc := family.NewService(family.NewRepository(st))
	subSvc := subscription.NewService(subscription.NewRepository(st), familySvc)
	bandSvc := NewService(NewRepository(st), familySvc, subSvc)
	familySvc.SetBandUnlinker(bandSvc)

	env := &testEnv{
		bands:  bandSvc,
		family: familySvc,
		subs:   subSvc,
		userID: "user-1",
	}
	env.memberID = env.addMember(t, "Asha Rao")
	return env
}

func (e *testEnv) addMember(t *testing.T, name string) string {
	t.Helper()

	member, err := e.family.AddMember(
		context.Background(),
		e.userID,
		family.AddMemberRequest{
			FullName:     name,
			Age:          34,
			BloodGroup:   "O+",
			HomeAddress:  "12 Lake View Road, Pune",
			Relationship: "self",
			EmergencyContacts: []family.EmergencyContactInput{
				{Name: "Ravi Rao", Phone: "9876543210", Relation: "spouse"},
			},
		},
	)
	require.NoError(t, err)
	return member.ID
}

func (e *testEnv) provision(t *testing.T, serial, bui string) {
	t.Helper()

	_, err := e.bands.AddToInventory(context.Background(), serial, bui)
	require.NoError(t, err)
}

func (e *testEnv) purchase(t *testing.T, plan string) {
	t.Helper()

	_, err := e.subs.Purchase(context.Background(), e.userID, plan)
	require.NoError(t, err)
}

func TestRegisterClaimsInventoryPair(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.provision(t, "VB-1001", "BUI-AAA1")

	got, err := env.bands.Register(ctx, env.userID, "vb-1001", "bui-aaa1")
	require.NoError(t, err)
	assert.Equal(t, "VB-1001", got.Serial)
	assert.Equal(t, "BUI-AAA1", got.BUI)
	assert.Nil(t, got.MemberID)
	assert.NotEmpty(t, got.ID)

	registered, err := env.bands.ListRegistered(ctx)
	require.NoError(t, err)
	require.Len(t, registered, 1)
	assert.Equal(t, env.userID, registered[0].UserID)
	assert.Equal(t, got.ID, registered[0].ID)
}

func TestRegisterRejectsMismatchedPair(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.provision(t, "VB-1001", "BUI-AAA1")

	cases := []struct {
		name   string
		serial string
		bui    string
	}{
		{"wrong bui", "VB-1001", "BUI-XXXX"},
		{"wrong serial", "VB-9999", "BUI-AAA1"},
		{"both unknown", "VB-9999", "BUI-XXXX"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.bands.Register(ctx, env.userID, tc.serial, tc.bui)
			require.ErrorIs(t, err, ErrInvalidCredential)
		})
	}
}

func TestRegisterRejectsClaimedSerial(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.provision(t, "VB-1001", "BUI-AAA1")

	_, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = env.bands.Register(ctx, "user-2", "VB-1001", "BUI-AAA1")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterClaimedSerialWinsOverBadIdentifier(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.provision(t, "VB0001", "BUI-AAAA")

	_, err := env.bands.Register(ctx, env.userID, "VB0001", "BUI-AAAA")
	require.NoError(t, err)

	// A claimed serial reports ErrAlreadyRegistered even when the
	// identifier does not match the inventory pair.
	_, err = env.bands.Register(ctx, "user-2", "VB0001", "BUI-BBBB")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestLinkAttachesBothSides(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual")
	env.provision(t, "VB-1001", "BUI-AAA1")

	band, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	linked, err := env.bands.Link(ctx, env.userID, band.ID, env.memberID)
	require.NoError(t, err)
	require.NotNil(t, linked.MemberID)
	assert.Equal(t, env.memberID, *linked.MemberID)

	member, err := env.family.GetMember(ctx, env.userID, env.memberID)
	require.NoError(t, err)
	require.NotNil(t, member.BandID)
	assert.Equal(t, band.ID, *member.BandID)

	// The global index mirrors the link for the public resolver.
	registered, err := env.bands.ListRegistered(ctx)
	require.NoError(t, err)
	require.Len(t, registered, 1)
	require.NotNil(t, registered[0].MemberID)
	assert.Equal(t, env.memberID, *registered[0].MemberID)
}

func TestLinkIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual")
	env.provision(t, "VB-1001", "BUI-AAA1")

	band, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band.ID, env.memberID)
	require.NoError(t, err)

	again, err := env.bands.Link(ctx, env.userID, band.ID, env.memberID)
	require.NoError(t, err)
	require.NotNil(t, again.MemberID)
	assert.Equal(t, env.memberID, *again.MemberID)

	slots, err := env.subs.Slots(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, slots.Used)
}

func TestLinkUnknownBand(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bands.Link(
		context.Background(), env.userID, "no-such-band", env.memberID)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestLinkEnforcesQuota(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual") // one slot
	env.provision(t, "VB-1001", "BUI-AAA1")
	env.provision(t, "VB-1002", "BUI-AAA2")

	band1, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)
	band2, err := env.bands.Register(ctx, env.userID, "VB-1002", "BUI-AAA2")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band1.ID, env.memberID)
	require.NoError(t, err)

	second := env.addMember(t, "Kiran Rao")
	_, err = env.bands.Link(ctx, env.userID, band2.ID, second)
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

// Moving a member to a new band is a swap: the old band is freed, the
// member keeps exactly one link, and no extra slot is consumed.
func TestLinkSwapConsumesNoSlot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual")
	env.provision(t, "VB-1001", "BUI-AAA1")
	env.provision(t, "VB-1002", "BUI-AAA2")

	band1, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)
	band2, err := env.bands.Register(ctx, env.userID, "VB-1002", "BUI-AAA2")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band1.ID, env.memberID)
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band2.ID, env.memberID)
	require.NoError(t, err)

	bands, err := env.bands.ListBands(ctx, env.userID)
	require.NoError(t, err)
	for _, b := range bands {
		switch b.ID {
		case band1.ID:
			assert.Nil(t, b.MemberID, "old band must release the member")
		case band2.ID:
			require.NotNil(t, b.MemberID)
			assert.Equal(t, env.memberID, *b.MemberID)
		}
	}

	member, err := env.family.GetMember(ctx, env.userID, env.memberID)
	require.NoError(t, err)
	require.NotNil(t, member.BandID)
	assert.Equal(t, band2.ID, *member.BandID)

	slots, err := env.subs.Slots(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, slots.Used)
}

// A band stolen from one member frees that member's pointer too, so
// both halves always agree after a cross-member swap.
func TestLinkStealsBandFromOtherMember(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "family") // four slots
	env.provision(t, "VB-1001", "BUI-AAA1")

	band1, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band1.ID, env.memberID)
	require.NoError(t, err)

	second := env.addMember(t, "Kiran Rao")
	_, err = env.bands.Link(ctx, env.userID, band1.ID, second)
	require.NoError(t, err)

	first, err := env.family.GetMember(ctx, env.userID, env.memberID)
	require.NoError(t, err)
	assert.Nil(t, first.BandID)

	moved, err := env.family.GetMember(ctx, env.userID, second)
	require.NoError(t, err)
	require.NotNil(t, moved.BandID)
	assert.Equal(t, band1.ID, *moved.BandID)
}

func TestUnlinkClearsBothSides(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual")
	env.provision(t, "VB-1001", "BUI-AAA1")

	band, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band.ID, env.memberID)
	require.NoError(t, err)

	unlinked, err := env.bands.Unlink(ctx, env.userID, band.ID)
	require.NoError(t, err)
	assert.Nil(t, unlinked.MemberID)

	member, err := env.family.GetMember(ctx, env.userID, env.memberID)
	require.NoError(t, err)
	assert.Nil(t, member.BandID)

	registered, err := env.bands.ListRegistered(ctx)
	require.NoError(t, err)
	require.Len(t, registered, 1)
	assert.Nil(t, registered[0].MemberID)
}

func TestDeleteMemberReleasesBand(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual")
	env.provision(t, "VB-1001", "BUI-AAA1")

	band, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band.ID, env.memberID)
	require.NoError(t, err)

	require.NoError(t, env.family.DeleteMember(ctx, env.userID, env.memberID))

	bands, err := env.bands.ListBands(ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, bands, 1)
	assert.Nil(t, bands[0].MemberID, "band survives the member, unlinked")
}

func TestUnregisterRemovesBandEverywhere(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.purchase(t, "individual")
	env.provision(t, "VB-1001", "BUI-AAA1")

	band, err := env.bands.Register(ctx, env.userID, "VB-1001", "BUI-AAA1")
	require.NoError(t, err)

	_, err = env.bands.Link(ctx, env.userID, band.ID, env.memberID)
	require.NoError(t, err)

	require.NoError(t, env.bands.Unregister(ctx, band.ID))

	registered, err := env.bands.ListRegistered(ctx)
	require.NoError(t, err)
	assert.Empty(t, registered)

	bands, err := env.bands.ListBands(ctx, env.userID)
	require.NoError(t, err)
	assert.Empty(t, bands)

	member, err := env.family.GetMember(ctx, env.userID, env.memberID)
	require.NoError(t, err)
	assert.Nil(t, member.BandID)
}

func TestInventoryRejectsDuplicateHalves(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.provision(t, "VB-1001", "BUI-AAA1")

	_, err := env.bands.AddToInventory(ctx, "VB-1001", "BUI-FRESH")
	require.ErrorIs(t, err, core.ErrDuplicateKey)

	_, err = env.bands.AddToInventory(ctx, "VB-FRESH", "BUI-AAA1")
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

// Random link/unlink sequences never break the pointer symmetry: every
// linked band's member points back at it, and no member holds more than
// one band.
func TestLinkUnlinkPointerSymmetry(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		env := newTestEnv(t)
		env.purchase(t, "family")

		memberIDs := []string{env.memberID}
		for i := 0; i < 3; i++ {
			memberIDs = append(
				memberIDs, env.addMember(t, fmt.Sprintf("Member %d", i)))
		}

		bandIDs := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			serial := fmt.Sprintf("VB-%04d", i)
			bui := fmt.Sprintf("BUI-%04d", i)
			env.provision(t, serial, bui)
			b, err := env.bands.Register(ctx, env.userID, serial, bui)
			require.NoError(t, err)
			bandIDs = append(bandIDs, b.ID)
		}

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			bandID := rapid.SampledFrom(bandIDs).Draw(rt, "band")
			if rapid.Bool().Draw(rt, "unlink") {
				if _, err := env.bands.Unlink(ctx, env.userID, bandID); err != nil {
					require.ErrorIs(rt, err, core.ErrNotFound)
				}
			} else {
				memberID := rapid.SampledFrom(memberIDs).Draw(rt, "member")
				if _, err := env.bands.Link(ctx, env.userID, bandID, memberID); err != nil {
					require.ErrorIs(rt, err, ErrQuotaExceeded)
				}
			}
		}

		bands, err := env.bands.ListBands(ctx, env.userID)
		require.NoError(rt, err)

		seen := map[string]string{}
		for _, b := range bands {
			if b.MemberID == nil {
				continue
			}
			_, dup := seen[*b.MemberID]
			require.False(rt, dup, "member linked to two bands")
			seen[*b.MemberID] = b.ID
		}

		for _, memberID := range memberIDs {
			member, err := env.family.GetMember(ctx, env.userID, memberID)
			require.NoError(rt, err)
			if member.BandID == nil {
				require.NotContains(rt, seen, memberID)
				continue
			}
			require.Equal(rt, seen[memberID], *member.BandID)
		}
	})
}
