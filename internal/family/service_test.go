// AngelaMos | 2026
// service_test.go

package family

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

const testUserID = "user-1"

func validAddRequest() AddMemberRequest {
	return AddMemberRequest{
		FullName:     "Asha Rao",
		Age:          34,
		BloodGroup:   "O+",
		Allergies:    "Peanuts",
		HomeAddress:  "12 Lake View Road, Pune",
		Relationship: "self",
		EmergencyContacts: []EmergencyContactInput{
			{Name: "Ravi Rao", Phone: "9876543210", Relation: "spouse"},
		},
	}
}

func TestAddMemberAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))

	member, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, member.ID)
	assert.Nil(t, member.BandID)
	assert.False(t, member.CreatedAt.IsZero())

	// Identity and contact fields are public by default, medical
	// details private.
	assert.Equal(t, map[string]bool{
		"fullName":          true,
		"age":               true,
		"bloodGroup":        true,
		"emergencyContacts": true,
		"relationship":      true,
		"allergies":         false,
		"medicalCondition":  false,
		"homeAddress":       false,
	}, member.PrivacySettings)
}

func TestAddMemberValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))

	cases := []struct {
		name   string
		mutate func(*AddMemberRequest)
	}{
		{"bad blood group", func(r *AddMemberRequest) { r.BloodGroup = "C+" }},
		{"bad relationship", func(r *AddMemberRequest) { r.Relationship = "cousin-twice-removed" }},
		{"no contacts", func(r *AddMemberRequest) { r.EmergencyContacts = nil }},
		{"too many contacts", func(r *AddMemberRequest) {
			contact := r.EmergencyContacts[0]
			r.EmergencyContacts = []EmergencyContactInput{
				contact, contact, contact, contact,
			}
		}},
		{"bad contact phone", func(r *AddMemberRequest) {
			r.EmergencyContacts[0].Phone = "12345"
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validAddRequest()
			tc.mutate(&req)

			_, err := svc.AddMember(ctx, testUserID, req)
			require.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestUpdateMemberIsPartial(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))

	member, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SetMemberBand(ctx, testUserID, member.ID, "band-1"))

	newName := "Asha R."
	updated, err := svc.UpdateMember(ctx, testUserID, member.ID, UpdateMemberRequest{
		FullName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, newName, updated.FullName)
	assert.Equal(t, member.Age, updated.Age)
	assert.Equal(t, member.BloodGroup, updated.BloodGroup)
	assert.Equal(t, member.PrivacySettings, updated.PrivacySettings)
	require.NotNil(t, updated.BandID, "profile updates never touch the band link")
	assert.Equal(t, "band-1", *updated.BandID)
}

func TestSetVisibilityMerges(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))

	member, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)

	updated, err := svc.SetVisibility(ctx, testUserID, member.ID, map[string]bool{
		"allergies": true,
		"age":       false,
	})
	require.NoError(t, err)

	assert.True(t, updated.PrivacySettings["allergies"])
	assert.False(t, updated.PrivacySettings["age"])
	assert.True(t, updated.PrivacySettings["fullName"], "untouched fields keep their value")
}

func TestSetVisibilityRejectsUnknownField(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))

	member, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)

	_, err = svc.SetVisibility(ctx, testUserID, member.ID, map[string]bool{
		"bloodGroup": true,
		"bandId":     true,
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	// Nothing was written.
	got, err := svc.GetMember(ctx, testUserID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrivacySettings(), got.PrivacySettings)
}

type recordingUnlinker struct {
	calls []string
}

func (r *recordingUnlinker) ClearMemberLink(
	_ context.Context,
	_, memberID string,
) error {
	r.calls = append(r.calls, memberID)
	return nil
}

func TestDeleteMemberNotifiesBands(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))
	unlinker := &recordingUnlinker{}
	svc.SetBandUnlinker(unlinker)

	member, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMember(ctx, testUserID, member.ID))
	assert.Equal(t, []string{member.ID}, unlinker.calls)

	_, err = svc.GetMember(ctx, testUserID, member.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestLinkedMemberCount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(store.NewMemory()))

	first, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)
	second, err := svc.AddMember(ctx, testUserID, validAddRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SetMemberBand(ctx, testUserID, first.ID, "band-1"))
	require.NoError(t, svc.SetMemberBand(ctx, testUserID, second.ID, "band-2"))
	require.NoError(t, svc.SetMemberBand(ctx, testUserID, second.ID, ""))

	count, err := svc.LinkedMemberCount(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
