// AngelaMos | 2026
// entity.go

package content

// Reference lists surfaced to the consumer app as pick-lists and help
// content. Admin-editable; seeded with defaults on first boot.

type Allergy struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
}

type Condition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Critical bool   `json:"critical"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)
