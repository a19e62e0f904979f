// AngelaMos | 2026
// builder_test.go

package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/subscription"
)

type stubData struct {
	users   []identity.User
	members map[string][]family.FamilyMember
	bands   map[string][]band.Band
	subs    map[string][]subscription.Subscription
}

func (d *stubData) ListUsers(context.Context) ([]identity.User, error) {
	return d.users, nil
}

func (d *stubData) ListMembers(
	_ context.Context, userID string,
) ([]family.FamilyMember, error) {
	return d.members[userID], nil
}

func (d *stubData) ListBands(
	_ context.Context, userID string,
) ([]band.Band, error) {
	return d.bands[userID], nil
}

func (d *stubData) List(
	_ context.Context, userID string,
) ([]subscription.Subscription, error) {
	return d.subs[userID], nil
}

func seededService() *Service {
	now := time.Now()
	bandID := "band-1"
	memberID := "member-1"

	data := &stubData{
		users: []identity.User{
			{
				ID: "u1", Name: "Asha Rao", Email: "asha@example.com",
				Phone: "9876543210", CreatedAt: now.AddDate(0, -6, 0),
			},
			{
				ID: "u2", Name: "", Email: "noname@example.com",
				Phone: "9876500000", CreatedAt: now.AddDate(0, -1, 0),
			},
		},
		members: map[string][]family.FamilyMember{
			"u1": {
				{
					ID: memberID, FullName: "Asha Rao", Age: 34,
					BloodGroup: "O+", Allergies: "Peanuts",
					Relationship: "self", BandID: &bandID,
				},
				{
					ID: "member-2", FullName: "Kiran Rao", Age: 8,
					BloodGroup: "A+", Relationship: "son",
				},
			},
		},
		bands: map[string][]band.Band{
			"u1": {
				{ID: bandID, Serial: "VB-1001", BUI: "BUI-AAA1", MemberID: &memberID},
				{ID: "band-2", Serial: "VB-1002", BUI: "BUI-AAA2"},
			},
		},
		subs: map[string][]subscription.Subscription{
			"u1": {
				{
					ID: "sub-1", Plan: "family", PlanName: "Family",
					MemberCount: 4, Price: 1499,
					StartDate: now.AddDate(0, -6, 0),
					EndDate:   now.AddDate(0, 6, 0),
					Status:    subscription.StatusActive,
				},
				{
					ID: "sub-2", Plan: "individual", PlanName: "Individual",
					MemberCount: 1, Price: 499,
					StartDate: now.AddDate(-2, 0, 0),
					EndDate:   now.AddDate(-1, 0, 0),
					Status:    subscription.StatusExpired,
				},
			},
		},
	}

	return NewService(data, data, data, data)
}

func TestRunEnrichesUserRows(t *testing.T) {
	svc := seededService()

	result, err := svc.Run(context.Background(), Query{
		Source: "users",
		Columns: []string{
			"name", "memberCount", "bandCount", "linkedBandCount",
			"subscriptionStatus", "planName", "totalSpent", "userName",
		},
		Sort: &SortSpec{Field: "name", Direction: "desc"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	asha := result.Rows[0]
	assert.Equal(t, StringValue("Asha Rao"), asha["name"])
	assert.Equal(t, NumberValue(2), asha["memberCount"])
	assert.Equal(t, NumberValue(2), asha["bandCount"])
	assert.Equal(t, NumberValue(1), asha["linkedBandCount"])
	assert.Equal(t, StringValue("active"), asha["subscriptionStatus"])
	assert.Equal(t, StringValue("Family"), asha["planName"])
	assert.Equal(t, NumberValue(1998), asha["totalSpent"])

	// A user without a name falls back to email for display.
	empty := result.Rows[1]
	assert.Equal(t, StringValue("noname@example.com"), empty["userName"])
	assert.Equal(t, StringValue("none"), empty["subscriptionStatus"])
	assert.Equal(t, StringValue("No Plan"), empty["planName"])
}

func TestRunFilters(t *testing.T) {
	ctx := context.Background()
	svc := seededService()

	cases := []struct {
		name   string
		query  Query
		totals int
	}{
		{
			"equals is case-insensitive",
			Query{
				Source:  "members",
				Columns: []string{"fullName"},
				Filters: []Filter{{Field: "bloodGroup", Operator: "equals", Value: "o+"}},
			},
			1,
		},
		{
			"contains",
			Query{
				Source:  "members",
				Columns: []string{"fullName"},
				Filters: []Filter{{Field: "fullName", Operator: "contains", Value: "rao"}},
			},
			2,
		},
		{
			"notEquals",
			Query{
				Source:  "members",
				Columns: []string{"fullName"},
				Filters: []Filter{{Field: "relationship", Operator: "notEquals", Value: "self"}},
			},
			1,
		},
		{
			"numeric gt",
			Query{
				Source:  "members",
				Columns: []string{"fullName"},
				Filters: []Filter{{Field: "age", Operator: "gt", Value: "18"}},
			},
			1,
		},
		{
			"boolean equals",
			Query{
				Source:  "members",
				Columns: []string{"fullName"},
				Filters: []Filter{{Field: "hasBand", Operator: "equals", Value: "true"}},
			},
			1,
		},
		{
			"ordering a string field matches nothing",
			Query{
				Source:  "members",
				Columns: []string{"fullName"},
				Filters: []Filter{{Field: "fullName", Operator: "gt", Value: "A"}},
			},
			0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Run(ctx, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.totals, result.Total)
		})
	}
}

func TestRunRejectsUnknownFields(t *testing.T) {
	ctx := context.Background()
	svc := seededService()

	_, err := svc.Run(ctx, Query{
		Source:  "users",
		Columns: []string{"name"},
		Filters: []Filter{{Field: "password", Operator: "equals", Value: "x"}},
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Run(ctx, Query{
		Source:  "users",
		Columns: []string{"name"},
		Sort:    &SortSpec{Field: "nonsense", Direction: "asc"},
	})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRunAggregatesOverFilteredRows(t *testing.T) {
	svc := seededService()

	result, err := svc.Run(context.Background(), Query{
		Source:  "subscriptions",
		Columns: []string{"planName", "price"},
		Filters: []Filter{
			{Field: "status", Operator: "equals", Value: "active"},
		},
		Aggregations: []Aggregation{
			{Field: "price", Function: "sum"},
			{Field: "price", Function: "count"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1499.0, result.Aggregates["sum_price"])
	assert.Equal(t, 1, result.Aggregates["count_price"])
}

func TestRunAggregateFunctions(t *testing.T) {
	svc := seededService()

	result, err := svc.Run(context.Background(), Query{
		Source:  "subscriptions",
		Columns: []string{"price"},
		Aggregations: []Aggregation{
			{Field: "price", Function: "avg"},
			{Field: "price", Function: "min"},
			{Field: "price", Function: "max"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 999.0, result.Aggregates["avg_price"])
	assert.Equal(t, 499.0, result.Aggregates["min_price"])
	assert.Equal(t, 1499.0, result.Aggregates["max_price"])
}

func TestRunProjectsRequestedColumns(t *testing.T) {
	svc := seededService()

	result, err := svc.Run(context.Background(), Query{
		Source:  "bands",
		Columns: []string{"serial", "isLinked", "memberName"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	for _, row := range result.Rows {
		assert.Len(t, row, 3)
	}

	byBand := map[Value]map[string]Value{}
	for _, row := range result.Rows {
		byBand[row["serial"]] = row
	}
	linked := byBand[StringValue("VB-1001")]
	assert.Equal(t, BoolValue(true), linked["isLinked"])
	assert.Equal(t, StringValue("Asha Rao"), linked["memberName"])

	free := byBand[StringValue("VB-1002")]
	assert.Equal(t, BoolValue(false), free["isLinked"])
}

func TestBuiltinTemplates(t *testing.T) {
	svc := seededService()

	tpl, ok := FindTemplate("active_subscriptions")
	require.True(t, ok)

	result, err := svc.Run(context.Background(), Query{
		Source:  tpl.Source,
		Columns: tpl.Columns,
		Filters: tpl.Filters,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	_, ok = FindTemplate("no_such_template")
	assert.False(t, ok)
}
