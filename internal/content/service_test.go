// AngelaMos | 2026
// service_test.go

package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

func TestEnsureDefaultsSeedsOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	require.NoError(t, svc.EnsureDefaults(ctx))

	allergies, err := svc.ListAllergies(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, allergies)

	conditions, err := svc.ListConditions(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, conditions)

	faqs, err := svc.ListFAQs(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, faqs)
}

// An admin who empties a list keeps it empty: re-seeding only happens
// for keys that have never been written.
func TestEnsureDefaultsRespectsEmptiedList(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	require.NoError(t, svc.EnsureDefaults(ctx))

	faqs, err := svc.ListFAQs(ctx)
	require.NoError(t, err)
	for _, f := range faqs {
		require.NoError(t, svc.DeleteFAQ(ctx, f.ID))
	}

	require.NoError(t, svc.EnsureDefaults(ctx))

	faqs, err = svc.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Empty(t, faqs)
}

func TestAddAllergyValidatesSeverity(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	entry, err := svc.AddAllergy(ctx, "Latex", "Contact", SeverityHigh)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	_, err = svc.AddAllergy(ctx, "Latex", "Contact", "fatal")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestDeleteUnknownEntry(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	require.ErrorIs(t, svc.DeleteAllergy(ctx, "nope"), core.ErrNotFound)
	require.ErrorIs(t, svc.DeleteCondition(ctx, "nope"), core.ErrNotFound)
	require.ErrorIs(t, svc.DeleteFAQ(ctx, "nope"), core.ErrNotFound)
}
