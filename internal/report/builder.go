// AngelaMos | 2026
// builder.go

package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/subscription"
)

type Filter struct {
	Field    string `json:"field"    validate:"required"`
	Operator string `json:"operator" validate:"required,oneof=equals notEquals contains gt gte lt lte"`
	Value    string `json:"value"    validate:"required"`
}

type SortSpec struct {
	Field     string `json:"field"     validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=asc desc"`
}

type Aggregation struct {
	Field    string `json:"field"    validate:"required"`
	Function string `json:"function" validate:"required,oneof=count sum avg min max"`
}

type Query struct {
	Source       string        `json:"source"       validate:"required,oneof=users members bands subscriptions"`
	Columns      []string      `json:"columns"      validate:"required,min=1"`
	Filters      []Filter      `json:"filters"      validate:"dive"`
	Sort         *SortSpec     `json:"sort"         validate:"omitempty"`
	Aggregations []Aggregation `json:"aggregations" validate:"dive"`
}

type Result struct {
	Rows       []map[string]Value `json:"rows"`
	Total      int                `json:"total"`
	Aggregates map[string]any     `json:"aggregates,omitempty"`
}

type UserSource interface {
	ListUsers(ctx context.Context) ([]identity.User, error)
}

type MemberSource interface {
	ListMembers(
		ctx context.Context,
		userID string,
	) ([]family.FamilyMember, error)
}

type BandSource interface {
	ListBands(ctx context.Context, userID string) ([]band.Band, error)
}

type SubscriptionSource interface {
	List(ctx context.Context, userID string) ([]subscription.Subscription, error)
}

// Service materializes ad-hoc reports. Each run takes a fresh snapshot
// of all four collections, enriches rows with cross-entity fields, then
// applies filters, sort, and aggregates as a pure function of that
// snapshot.
type Service struct {
	users   UserSource
	members MemberSource
	bands   BandSource
	subs    SubscriptionSource
}

func NewService(
	users UserSource,
	members MemberSource,
	bands BandSource,
	subs SubscriptionSource,
) *Service {
	return &Service{users: users, members: members, bands: bands, subs: subs}
}

func (s *Service) Run(ctx context.Context, q Query) (*Result, error) {
	for _, f := range q.Filters {
		if _, ok := fieldDef(q.Source, f.Field); !ok {
			return nil, fmt.Errorf(
				"report: unknown field %q for source %q: %w",
				f.Field, q.Source, core.ErrInvalidInput,
			)
		}
	}
	if q.Sort != nil {
		if _, ok := fieldDef(q.Source, q.Sort.Field); !ok {
			return nil, fmt.Errorf(
				"report: unknown sort field %q: %w",
				q.Sort.Field, core.ErrInvalidInput,
			)
		}
	}

	rows, err := s.snapshot(ctx, q.Source)
	if err != nil {
		return nil, err
	}

	filtered := rows[:0]
	for _, row := range rows {
		if matchesAll(row, q.Filters) {
			filtered = append(filtered, row)
		}
	}

	if q.Sort != nil {
		field := q.Sort.Field
		asc := q.Sort.Direction == "asc"
		sort.SliceStable(filtered, func(i, j int) bool {
			less := filtered[i][field].Less(filtered[j][field])
			if asc {
				return less
			}
			return filtered[j][field].Less(filtered[i][field])
		})
	}

	aggregates := make(map[string]any)
	for _, agg := range q.Aggregations {
		key := agg.Function + "_" + agg.Field
		aggregates[key] = aggregate(filtered, agg)
	}

	projected := make([]map[string]Value, 0, len(filtered))
	for _, row := range filtered {
		out := make(map[string]Value, len(q.Columns))
		for _, col := range q.Columns {
			if v, ok := row[col]; ok {
				out[col] = v
			}
		}
		projected = append(projected, out)
	}

	result := &Result{
		Rows:  projected,
		Total: len(projected),
	}
	if len(aggregates) > 0 {
		result.Aggregates = aggregates
	}

	return result, nil
}

func matchesAll(row map[string]Value, filters []Filter) bool {
	for _, f := range filters {
		v, ok := row[f.Field]
		if !ok {
			return false
		}
		if !v.Matches(f.Operator, f.Value) {
			return false
		}
	}
	return true
}

func aggregate(rows []map[string]Value, agg Aggregation) any {
	if agg.Function == "count" {
		return len(rows)
	}

	nums := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := row[agg.Field]; ok {
			if n, numeric := v.AsNumber(); numeric {
				nums = append(nums, n)
			}
		}
	}

	switch agg.Function {
	case "sum":
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return total
	case "avg":
		if len(nums) == 0 {
			return 0.0
		}
		total := 0.0
		for _, n := range nums {
			total += n
		}
		return math.Round(total/float64(len(nums))*100) / 100
	case "min":
		if len(nums) == 0 {
			return nil
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n < m {
				m = n
			}
		}
		return m
	case "max":
		if len(nums) == 0 {
			return nil
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return m
	}

	return nil
}

// snapshot loads and enriches the requested source across all users.
func (s *Service) snapshot(
	ctx context.Context,
	source string,
) ([]map[string]Value, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var rows []map[string]Value

	for i := range users {
		user := &users[i]
		userName := user.Name
		if userName == "" {
			userName = user.Email
		}

		members, err := s.members.ListMembers(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		bands, err := s.bands.ListBands(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		subs, err := s.subs.List(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		switch source {
		case SourceUsers:
			rows = append(rows, userRow(user, userName, members, bands, subs))
		case SourceMembers:
			for j := range members {
				rows = append(rows, memberRow(&members[j], userName))
			}
		case SourceBands:
			for j := range bands {
				rows = append(rows, bandRow(&bands[j], members, userName))
			}
		case SourceSubscriptions:
			for j := range subs {
				rows = append(rows, subscriptionRow(&subs[j], userName))
			}
		}
	}

	if rows == nil {
		rows = []map[string]Value{}
	}

	return rows, nil
}

func userRow(
	user *identity.User,
	userName string,
	members []family.FamilyMember,
	bands []band.Band,
	subs []subscription.Subscription,
) map[string]Value {
	linked := 0
	for i := range bands {
		if bands[i].IsLinked() {
			linked++
		}
	}

	now := time.Now()
	status := "none"
	planName := "No Plan"
	totalSpent := 0
	for i := range subs {
		totalSpent += subs[i].Price
		if subs[i].IsActive(now) && status != subscription.StatusActive {
			status = subscription.StatusActive
			planName = subs[i].PlanName
		}
	}
	if status == "none" && len(subs) > 0 {
		status = subscription.StatusExpired
	}

	return map[string]Value{
		"id":                 StringValue(user.ID),
		"name":               StringValue(user.Name),
		"email":              StringValue(user.Email),
		"phone":              StringValue(user.Phone),
		"createdAt":          DateValue(user.CreatedAt),
		"memberCount":        NumberValue(float64(len(members))),
		"bandCount":          NumberValue(float64(len(bands))),
		"linkedBandCount":    NumberValue(float64(linked)),
		"subscriptionStatus": StringValue(status),
		"planName":           StringValue(planName),
		"totalSpent":         NumberValue(float64(totalSpent)),
		"userName":           StringValue(userName),
	}
}

func memberRow(m *family.FamilyMember, userName string) map[string]Value {
	return map[string]Value{
		"id":                  StringValue(m.ID),
		"fullName":            StringValue(m.FullName),
		"age":                 NumberValue(float64(m.Age)),
		"bloodGroup":          StringValue(m.BloodGroup),
		"relationship":        StringValue(m.Relationship),
		"hasAllergies":        BoolValue(m.Allergies != ""),
		"hasMedicalCondition": BoolValue(m.MedicalCondition != ""),
		"hasBand":             BoolValue(m.HasBand()),
		"userName":            StringValue(userName),
		"createdAt":           DateValue(m.CreatedAt),
	}
}

func bandRow(
	b *band.Band,
	members []family.FamilyMember,
	userName string,
) map[string]Value {
	memberName := ""
	if b.IsLinked() {
		for i := range members {
			if members[i].ID == *b.MemberID {
				memberName = members[i].FullName
				break
			}
		}
	}

	return map[string]Value{
		"id":           StringValue(b.ID),
		"bs":           StringValue(b.Serial),
		"bui":          StringValue(b.BUI),
		"isLinked":     BoolValue(b.IsLinked()),
		"memberName":   StringValue(memberName),
		"userName":     StringValue(userName),
		"registeredAt": DateValue(b.RegisteredAt),
	}
}

func subscriptionRow(
	sub *subscription.Subscription,
	userName string,
) map[string]Value {
	return map[string]Value{
		"id":          StringValue(sub.ID),
		"userName":    StringValue(userName),
		"planName":    StringValue(sub.PlanName),
		"price":       NumberValue(float64(sub.Price)),
		"status":      StringValue(sub.Status),
		"startDate":   DateValue(sub.StartDate),
		"endDate":     DateValue(sub.EndDate),
		"memberCount": NumberValue(float64(sub.MemberCount)),
	}
}
