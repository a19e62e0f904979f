// AngelaMos | 2026
// templates.go

package report

type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Columns     []string `json:"columns"`
	Filters     []Filter `json:"filters"`
}

// Templates are the canned report definitions offered alongside the
// ad-hoc builder. A template is just a pre-filled Query.
var Templates = []Template{
	{
		ID:          "users_no_bands",
		Name:        "Users with No Bands",
		Description: "Users who have not registered any bands",
		Source:      SourceUsers,
		Columns:     []string{"name", "email", "phone", "memberCount", "createdAt"},
		Filters: []Filter{
			{Field: "bandCount", Operator: "equals", Value: "0"},
		},
	},
	{
		ID:          "users_1_4_bands",
		Name:        "Users with 1-4 Bands",
		Description: "Users who have registered between 1 and 4 bands",
		Source:      SourceUsers,
		Columns:     []string{"name", "email", "bandCount", "linkedBandCount", "planName"},
		Filters: []Filter{
			{Field: "bandCount", Operator: "gte", Value: "1"},
			{Field: "bandCount", Operator: "lte", Value: "4"},
		},
	},
	{
		ID:          "users_no_members",
		Name:        "Users with No Family Members",
		Description: "Users who have not added any family members",
		Source:      SourceUsers,
		Columns:     []string{"name", "email", "phone", "subscriptionStatus", "createdAt"},
		Filters: []Filter{
			{Field: "memberCount", Operator: "equals", Value: "0"},
		},
	},
	{
		ID:          "active_subscriptions",
		Name:        "Active Subscriptions",
		Description: "All currently active subscriptions",
		Source:      SourceSubscriptions,
		Columns:     []string{"userName", "planName", "price", "startDate", "endDate"},
		Filters: []Filter{
			{Field: "status", Operator: "equals", Value: "active"},
		},
	},
	{
		ID:          "members_with_conditions",
		Name:        "Members with Medical Conditions",
		Description: "Family members who have medical conditions listed",
		Source:      SourceMembers,
		Columns:     []string{"fullName", "age", "bloodGroup", "userName", "hasBand"},
		Filters: []Filter{
			{Field: "hasMedicalCondition", Operator: "equals", Value: "true"},
		},
	},
	{
		ID:          "unlinked_bands",
		Name:        "Unlinked Bands",
		Description: "Registered bands not linked to any member",
		Source:      SourceBands,
		Columns:     []string{"bs", "bui", "userName", "registeredAt"},
		Filters: []Filter{
			{Field: "isLinked", Operator: "equals", Value: "false"},
		},
	},
}

func FindTemplate(id string) (*Template, bool) {
	for i := range Templates {
		if Templates[i].ID == id {
			return &Templates[i], true
		}
	}
	return nil, false
}
