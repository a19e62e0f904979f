// AngelaMos | 2026
// entity.go

package identity

import (
	"strconv"
	"strings"
	"time"
)

// User is a consumer account keyed by phone number. The UDC ("unique
// database code") is a human-quotable identifier printed on support
// material, distinct from the opaque record id.
type User struct {
	ID        string    `json:"id"`
	UDC       string    `json:"udc"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// PendingVerification tracks a phone number between the OTP request and
// registration steps. Expiry is enforced lazily on the next read.
type PendingVerification struct {
	Phone       string    `json:"phone"`
	RequestedAt time.Time `json:"requestedAt"`
}

func (p *PendingVerification) IsExpired(ttl time.Duration) bool {
	return time.Now().After(p.RequestedAt.Add(ttl))
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// NewUDC derives a code of the form UDC<base36 timestamp, upper-cased>.
func NewUDC() string {
	return "UDC" + strings.ToUpper(
		strconv.FormatInt(time.Now().UnixMilli(), 36),
	)
}
