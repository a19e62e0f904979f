// AngelaMos | 2026
// entity.go

package subscription

import (
	"time"
)

const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// Subscription grants a fixed member-slot quota for one year. The
// stored status is only authoritative for the terminal "cancelled"
// state; expiry is always recomputed from EndDate at read time.
type Subscription struct {
	ID          string    `json:"id"`
	Plan        string    `json:"plan"`
	PlanName    string    `json:"planName"`
	MemberCount int       `json:"memberCount"`
	Price       int       `json:"price"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
}

// DerivedStatus is the status callers should trust: cancelled wins,
// otherwise a past EndDate reads as expired regardless of what was
// stored.
func (s *Subscription) DerivedStatus(now time.Time) string {
	if s.Status == StatusCancelled {
		return StatusCancelled
	}
	if now.After(s.EndDate) {
		return StatusExpired
	}
	return s.Status
}

func (s *Subscription) IsActive(now time.Time) bool {
	return s.DerivedStatus(now) == StatusActive
}

type Plan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MemberCount   int    `json:"member_count"`
	Price         int    `json:"price"`
	OriginalPrice int    `json:"original_price"`
}

var Plans = map[string]Plan{
	"individual": {
		ID:            "individual",
		Name:          "Individual",
		MemberCount:   1,
		Price:         499,
		OriginalPrice: 699,
	},
	"family": {
		ID:            "family",
		Name:          "Family",
		MemberCount:   4,
		Price:         1499,
		OriginalPrice: 2499,
	},
}

// SlotInfo is the member-slot ledger for one user. Available can go
// negative when a plan is cancelled after its slots were consumed;
// that over-allocation is reported, not repaired.
type SlotInfo struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}
