// AngelaMos | 2026
// resolver.go

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
)

// BandIndex is the global registered-bands view, implemented by the
// band service.
type BandIndex interface {
	ListRegistered(ctx context.Context) ([]band.RegisteredBand, error)
}

// MemberSource fetches a member under a given owner, implemented by
// the family service.
type MemberSource interface {
	GetMember(
		ctx context.Context,
		userID, memberID string,
	) (*family.FamilyMember, error)
}

type Service struct {
	bands   BandIndex
	members MemberSource
}

func NewService(bands BandIndex, members MemberSource) *Service {
	return &Service{bands: bands, members: members}
}

// Resolve maps a scanned band identifier to the linked member's public
// field subset. Every miss (unknown identifier, unregistered or
// unlinked band, missing member, or a member with nothing visible)
// reads identically as not-found, so a scanner learns nothing about
// which case occurred.
func (s *Service) Resolve(
	ctx context.Context,
	bui string,
) (map[string]any, error) {
	registered, err := s.bands.ListRegistered(ctx)
	if err != nil {
		return nil, err
	}

	var entry *band.RegisteredBand
	for i := range registered {
		if registered[i].BUI == bui {
			entry = &registered[i]
			break
		}
	}

	if entry == nil || !entry.IsLinked() {
		return nil, fmt.Errorf("resolve profile: %w", core.ErrNotFound)
	}

	member, err := s.members.GetMember(ctx, entry.UserID, *entry.MemberID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve profile: %w", core.ErrNotFound)
		}
		return nil, err
	}

	public := filterVisible(member)
	if len(public) == 0 {
		return nil, fmt.Errorf("resolve profile: %w", core.ErrNotFound)
	}

	return public, nil
}

func filterVisible(m *family.FamilyMember) map[string]any {
	values := map[string]any{
		"fullName":          m.FullName,
		"age":               m.Age,
		"bloodGroup":        m.BloodGroup,
		"allergies":         m.Allergies,
		"medicalCondition":  m.MedicalCondition,
		"homeAddress":       m.HomeAddress,
		"emergencyContacts": m.EmergencyContacts,
		"relationship":      m.Relationship,
	}

	public := make(map[string]any)
	for _, field := range family.PrivacyFields {
		if m.PrivacySettings[field] {
			public[field] = values[field]
		}
	}

	return public
}
