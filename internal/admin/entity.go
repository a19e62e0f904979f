// AngelaMos | 2026
// entity.go

package admin

import (
	"time"

	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/subscription"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleStaff      = "admin"
)

// Account is a back-office login. Password hashes never serialize.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserOverview is a user row enriched for the back-office list view.
type UserOverview struct {
	identity.User

	MemberCount        int    `json:"memberCount"`
	BandCount          int    `json:"bandCount"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	PlanName           string `json:"planName"`
}

// UserDetail bundles everything stored under a single user.
type UserDetail struct {
	User          identity.User               `json:"user"`
	Members       []family.FamilyMember       `json:"members"`
	Bands         []band.Band                 `json:"bands"`
	Subscriptions []subscription.Subscription `json:"subscriptions"`
}

// SubscriptionOverview attributes a subscription to its owner.
type SubscriptionOverview struct {
	subscription.Subscription

	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// BandOverview is a registered band enriched with display names.
type BandOverview struct {
	band.RegisteredBand

	UserName   string `json:"userName"`
	MemberName string `json:"memberName"`
}

// InventoryEntry marks whether a provisioned band has been claimed.
type InventoryEntry struct {
	band.InventoryBand

	IsRegistered bool `json:"isRegistered"`
}
