// AngelaMos | 2026
// service.go

package family

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
)

var contactPhonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// BandUnlinker clears the band-side pointer when a member goes away.
// Implemented by the band service; the band record itself survives.
type BandUnlinker interface {
	ClearMemberLink(ctx context.Context, userID, memberID string) error
}

type Service struct {
	repo  Repository
	bands BandUnlinker
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetBandUnlinker breaks the construction cycle between the family and
// band services; wired once at bootstrap.
func (s *Service) SetBandUnlinker(bands BandUnlinker) {
	s.bands = bands
}

func (s *Service) ListMembers(
	ctx context.Context,
	userID string,
) ([]FamilyMember, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) GetMember(
	ctx context.Context,
	userID, memberID string,
) (*FamilyMember, error) {
	return s.repo.Find(ctx, userID, memberID)
}

func (s *Service) AddMember(
	ctx context.Context,
	userID string,
	req AddMemberRequest,
) (*FamilyMember, error) {
	if err := validateMemberFields(
		req.BloodGroup,
		req.Relationship,
		req.EmergencyContacts,
	); err != nil {
		return nil, err
	}

	member := &FamilyMember{
		ID:                uuid.New().String(),
		FullName:          req.FullName,
		Age:               req.Age,
		BloodGroup:        req.BloodGroup,
		Allergies:         req.Allergies,
		MedicalCondition:  req.MedicalCondition,
		HomeAddress:       req.HomeAddress,
		Relationship:      req.Relationship,
		EmergencyContacts: toContacts(req.EmergencyContacts),
		BandID:            nil,
		PrivacySettings:   DefaultPrivacySettings(),
		CreatedAt:         time.Now(),
	}

	if err := s.repo.Append(ctx, userID, member); err != nil {
		return nil, err
	}

	return member, nil
}

// UpdateMember applies a partial update to profile fields only. The
// visibility map and band link are never touched here; they have their
// own mutators.
func (s *Service) UpdateMember(
	ctx context.Context,
	userID, memberID string,
	req UpdateMemberRequest,
) (*FamilyMember, error) {
	member, err := s.repo.Find(ctx, userID, memberID)
	if err != nil {
		return nil, err
	}

	if req.BloodGroup != nil && !ValidBloodGroup(*req.BloodGroup) {
		return nil, fmt.Errorf(
			"update member: invalid blood group %q: %w",
			*req.BloodGroup,
			core.ErrInvalidInput,
		)
	}
	if req.Relationship != nil && !ValidRelationship(*req.Relationship) {
		return nil, fmt.Errorf(
			"update member: invalid relationship %q: %w",
			*req.Relationship,
			core.ErrInvalidInput,
		)
	}
	if req.EmergencyContacts != nil {
		if err := validateContacts(req.EmergencyContacts); err != nil {
			return nil, err
		}
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Age != nil {
		member.Age = *req.Age
	}
	if req.BloodGroup != nil {
		member.BloodGroup = *req.BloodGroup
	}
	if req.Allergies != nil {
		member.Allergies = *req.Allergies
	}
	if req.MedicalCondition != nil {
		member.MedicalCondition = *req.MedicalCondition
	}
	if req.HomeAddress != nil {
		member.HomeAddress = *req.HomeAddress
	}
	if req.Relationship != nil {
		member.Relationship = *req.Relationship
	}
	if req.EmergencyContacts != nil {
		member.EmergencyContacts = toContacts(req.EmergencyContacts)
	}

	if err := s.repo.Update(ctx, userID, member); err != nil {
		return nil, err
	}

	return member, nil
}

// DeleteMember removes the record and clears any band's back-pointer.
// The band itself stays registered.
func (s *Service) DeleteMember(
	ctx context.Context,
	userID, memberID string,
) error {
	if err := s.repo.Delete(ctx, userID, memberID); err != nil {
		return err
	}

	if s.bands != nil {
		if err := s.bands.ClearMemberLink(ctx, userID, memberID); err != nil {
			return fmt.Errorf("delete member: unlink band: %w", err)
		}
	}

	return nil
}

// SetVisibility merges booleans into the member's visibility map.
// Unknown field keys are rejected before anything is written.
func (s *Service) SetVisibility(
	ctx context.Context,
	userID, memberID string,
	fields map[string]bool,
) (*FamilyMember, error) {
	for field := range fields {
		if !ValidPrivacyField(field) {
			return nil, fmt.Errorf(
				"set visibility: unknown field %q: %w",
				field,
				core.ErrInvalidInput,
			)
		}
	}

	member, err := s.repo.Find(ctx, userID, memberID)
	if err != nil {
		return nil, err
	}

	if member.PrivacySettings == nil {
		member.PrivacySettings = DefaultPrivacySettings()
	}
	for field, visible := range fields {
		member.PrivacySettings[field] = visible
	}

	if err := s.repo.Update(ctx, userID, member); err != nil {
		return nil, err
	}

	return member, nil
}

// MemberBand reports the member's current band link, if any.
func (s *Service) MemberBand(
	ctx context.Context,
	userID, memberID string,
) (string, error) {
	member, err := s.repo.Find(ctx, userID, memberID)
	if err != nil {
		return "", err
	}

	if member.BandID == nil {
		return "", nil
	}
	return *member.BandID, nil
}

// SetMemberBand writes the member's half of the band link. An empty
// bandID clears it. Only the band service calls this, as the single
// mutator of both pointer halves.
func (s *Service) SetMemberBand(
	ctx context.Context,
	userID, memberID, bandID string,
) error {
	member, err := s.repo.Find(ctx, userID, memberID)
	if err != nil {
		return err
	}

	if bandID == "" {
		member.BandID = nil
	} else {
		member.BandID = &bandID
	}

	return s.repo.Update(ctx, userID, member)
}

// LinkedMemberCount counts the user's members holding a band link; the
// subscription ledger uses it as the "used slots" figure.
func (s *Service) LinkedMemberCount(
	ctx context.Context,
	userID string,
) (int, error) {
	members, err := s.repo.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	used := 0
	for i := range members {
		if members[i].HasBand() {
			used++
		}
	}

	return used, nil
}

func validateMemberFields(
	bloodGroup, relationship string,
	contacts []EmergencyContactInput,
) error {
	if !ValidBloodGroup(bloodGroup) {
		return fmt.Errorf(
			"add member: invalid blood group %q: %w",
			bloodGroup,
			core.ErrInvalidInput,
		)
	}
	if !ValidRelationship(relationship) {
		return fmt.Errorf(
			"add member: invalid relationship %q: %w",
			relationship,
			core.ErrInvalidInput,
		)
	}
	return validateContacts(contacts)
}

func validateContacts(contacts []EmergencyContactInput) error {
	for _, c := range contacts {
		if !contactPhonePattern.MatchString(c.Phone) {
			return fmt.Errorf(
				"emergency contact %q: invalid mobile number: %w",
				c.Name,
				core.ErrInvalidInput,
			)
		}
	}
	return nil
}

func toContacts(inputs []EmergencyContactInput) []EmergencyContact {
	contacts := make([]EmergencyContact, 0, len(inputs))
	for _, in := range inputs {
		contacts = append(contacts, EmergencyContact{
			Name:     in.Name,
			Phone:    in.Phone,
			Relation: in.Relation,
		})
	}
	return contacts
}
