// AngelaMos | 2026
// schema.go

package report

type FieldDef struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

type SourceDef struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Fields []FieldDef `json:"fields"`
}

const (
	SourceUsers         = "users"
	SourceMembers       = "members"
	SourceBands         = "bands"
	SourceSubscriptions = "subscriptions"
)

// Sources declares the queryable datasets and their typed fields. The
// enriched fields (counts, flags, owner names) are computed per
// snapshot, not stored.
var Sources = map[string]SourceDef{
	SourceUsers: {
		Key:   SourceUsers,
		Label: "Users",
		Fields: []FieldDef{
			{Key: "id", Label: "User ID", Type: TypeString},
			{Key: "name", Label: "Name", Type: TypeString},
			{Key: "email", Label: "Email", Type: TypeString},
			{Key: "phone", Label: "Phone", Type: TypeString},
			{Key: "createdAt", Label: "Registration Date", Type: TypeDate},
			{Key: "memberCount", Label: "Family Members", Type: TypeNumber},
			{Key: "bandCount", Label: "Registered Bands", Type: TypeNumber},
			{Key: "linkedBandCount", Label: "Linked Bands", Type: TypeNumber},
			{Key: "subscriptionStatus", Label: "Subscription Status", Type: TypeString},
			{Key: "planName", Label: "Plan Name", Type: TypeString},
			{Key: "totalSpent", Label: "Total Spent (₹)", Type: TypeNumber},
		},
	},
	SourceMembers: {
		Key:   SourceMembers,
		Label: "Family Members",
		Fields: []FieldDef{
			{Key: "id", Label: "Member ID", Type: TypeString},
			{Key: "fullName", Label: "Full Name", Type: TypeString},
			{Key: "age", Label: "Age", Type: TypeNumber},
			{Key: "bloodGroup", Label: "Blood Group", Type: TypeString},
			{Key: "relationship", Label: "Relationship", Type: TypeString},
			{Key: "hasAllergies", Label: "Has Allergies", Type: TypeBoolean},
			{Key: "hasMedicalCondition", Label: "Has Medical Condition", Type: TypeBoolean},
			{Key: "hasBand", Label: "Band Linked", Type: TypeBoolean},
			{Key: "userName", Label: "User Name", Type: TypeString},
			{Key: "createdAt", Label: "Added Date", Type: TypeDate},
		},
	},
	SourceBands: {
		Key:   SourceBands,
		Label: "Wrist Bands",
		Fields: []FieldDef{
			{Key: "id", Label: "Band ID", Type: TypeString},
			{Key: "bs", Label: "Serial Number", Type: TypeString},
			{Key: "bui", Label: "Unique ID (BUI)", Type: TypeString},
			{Key: "isLinked", Label: "Is Linked", Type: TypeBoolean},
			{Key: "memberName", Label: "Linked Member", Type: TypeString},
			{Key: "userName", Label: "User Name", Type: TypeString},
			{Key: "registeredAt", Label: "Registration Date", Type: TypeDate},
		},
	},
	SourceSubscriptions: {
		Key:   SourceSubscriptions,
		Label: "Subscriptions",
		Fields: []FieldDef{
			{Key: "id", Label: "Subscription ID", Type: TypeString},
			{Key: "userName", Label: "User Name", Type: TypeString},
			{Key: "planName", Label: "Plan", Type: TypeString},
			{Key: "price", Label: "Amount (₹)", Type: TypeNumber},
			{Key: "status", Label: "Status", Type: TypeString},
			{Key: "startDate", Label: "Start Date", Type: TypeDate},
			{Key: "endDate", Label: "End Date", Type: TypeDate},
			{Key: "memberCount", Label: "Member Slots", Type: TypeNumber},
		},
	},
}

func fieldDef(source, key string) (FieldDef, bool) {
	def, ok := Sources[source]
	if !ok {
		return FieldDef{}, false
	}
	for _, f := range def.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDef{}, false
}
