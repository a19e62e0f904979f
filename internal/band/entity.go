// AngelaMos | 2026
// entity.go

package band

import (
	"errors"
	"time"
)

// Domain errors for the registration flow. A mismatched serial or
// identifier surfaces as the same ErrInvalidCredential regardless of
// which half is wrong; an already-claimed serial is reported as
// ErrAlreadyRegistered even when the identifier differs too.
var (
	ErrInvalidCredential = errors.New("invalid band serial or unique identifier")
	ErrAlreadyRegistered = errors.New("band already registered")
	ErrQuotaExceeded     = errors.New("no member slots available")
)

// Band is one physical wristband claimed by a user. The serial (bs) is
// printed on the unit; the unique identifier (bui) is the second
// possession proof required at registration. MemberID is the band's
// half of the band↔member link.
type Band struct {
	ID           string    `json:"id"`
	Serial       string    `json:"bs"`
	BUI          string    `json:"bui"`
	MemberID     *string   `json:"memberId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func (b *Band) IsLinked() bool {
	return b.MemberID != nil && *b.MemberID != ""
}

// RegisteredBand is the global-index copy of a Band with the owning
// user denormalized in. The index is authoritative for system-wide
// serial uniqueness and for public scan resolution.
type RegisteredBand struct {
	Band
	UserID string `json:"userId"`
}

// InventoryBand is a provisioning pair in the master catalogue. A pair
// must exist here, matching exactly, before any user can register it.
type InventoryBand struct {
	Serial string `json:"bs"`
	BUI    string `json:"bui"`
}
